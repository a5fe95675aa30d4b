package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "access_token"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Authenticate проверяет JWT (HS256, секрет проекта) из заголовка Authorization.
// Claims и исходный токен сохраняются в контексте запроса.
func Authenticate(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := parseToken(raw, key)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", slog.Any("error", err))
				writeAuthError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}

			ctx := ContextWithClaims(r.Context(), claims, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithClaims кладёт claims и токен в контекст.
func ContextWithClaims(ctx context.Context, claims jwt.MapClaims, rawToken string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, claims)
	return context.WithValue(ctx, tokenContextKey, rawToken)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: malformed Authorization header", ErrMissingToken)
	}
	return strings.TrimSpace(parts[1]), nil
}

func parseToken(raw string, key []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
