package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/football-console/brackets"
	"github.com/Dosada05/football-console/config"
	"github.com/Dosada05/football-console/db"
	"github.com/Dosada05/football-console/handlers"
	"github.com/Dosada05/football-console/middleware"
	"github.com/Dosada05/football-console/repositories"
	api "github.com/Dosada05/football-console/routes"
	"github.com/Dosada05/football-console/services"
	"github.com/Dosada05/football-console/storage"
	"github.com/Dosada05/football-console/supabase"
	"github.com/go-chi/chi/v5"
)

// @title Football Console API
// @version 1.0
// @description Админка футбольных турниров: команды, матчи, турнирная таблица.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

// repositorySet - репозитории выбранного хранилища.
type repositorySet struct {
	tournaments repositories.TournamentRepository
	teams       repositories.TeamRepository
	players     repositories.PlayerRepository
	memberships repositories.MembershipRepository
	matches     repositories.MatchRepository
	close       func() error
}

func main() {
	// Уровень логов уточняется после загрузки конфигурации
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(logger, logLevel); err != nil {
		logger.Error("application stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

// run поднимает сервер и возвращает ошибку вместо выхода, чтобы отработали все defer.
func run(logger *slog.Logger, logLevel *slog.LevelVar) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logLevel.Set(cfg.SlogLevel())
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("data_store", cfg.DataStore))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize data store: %w", err)
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error("failed to close data store", slog.Any("error", err))
		}
	}()

	// Логотипы команд (Cloudflare R2) опциональны
	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage is not configured, logo uploads are disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Сервисы
	tournamentService := services.NewTournamentService(repos.tournaments, logger)
	teamService := services.NewTeamService(repos.teams, uploader, logger)
	playerService := services.NewPlayerService(repos.players, repos.teams)
	membershipService := services.NewMembershipService(repos.tournaments, repos.memberships, repos.matches, uploader, logger)
	standingsService := services.NewStandingsService(
		repos.tournaments,
		repos.memberships,
		repos.matches,
		uploader,
		wsHub,
		logger,
	)
	matchService := services.NewMatchService(
		repos.tournaments,
		repos.memberships,
		repos.matches,
		standingsService,
		brackets.NewRoundRobinGenerator(),
		wsHub,
		uploader,
		logger,
	)
	dashboardService := services.NewDashboardService(repos.tournaments, repos.teams, repos.players, repos.matches)

	// Обработчики и маршруты
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			JWTSecret:      cfg.JWTSecretKey,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Logger:         logger,
		},
		handlers.NewTournamentHandler(tournamentService, membershipService, standingsService, matchService),
		handlers.NewTeamHandler(teamService),
		handlers.NewPlayerHandler(playerService),
		handlers.NewMatchHandler(matchService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositorySet, error) {
	switch cfg.DataStore {
	case config.DataStoreSupabase:
		client, err := supabase.NewClient(supabase.Config{
			ProjectURL:        cfg.SupabaseURL,
			AnonKey:           cfg.SupabaseAnonKey,
			Timeout:           10 * time.Second,
			RequestsPerSecond: cfg.SupabaseRateLimit,
		})
		if err != nil {
			return nil, err
		}
		// Запросы идут с JWT пользователя, чтобы работали политики RLS
		store := supabase.NewStore(client, middleware.AccessTokenFromContext, logger)
		logger.Info("using Supabase REST data store", slog.String("url", cfg.SupabaseURL))
		return &repositorySet{
			tournaments: store.Tournaments(),
			teams:       store.Teams(),
			players:     store.Players(),
			memberships: store.Memberships(),
			matches:     store.Matches(),
			close:       func() error { return nil },
		}, nil

	default:
		dbConn, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established")
		return postgresRepositories(dbConn), nil
	}
}

func postgresRepositories(dbConn *sql.DB) *repositorySet {
	return &repositorySet{
		tournaments: repositories.NewPostgresTournamentRepository(dbConn),
		teams:       repositories.NewPostgresTeamRepository(dbConn),
		players:     repositories.NewPostgresPlayerRepository(dbConn),
		memberships: repositories.NewPostgresMembershipRepository(dbConn),
		matches:     repositories.NewPostgresMatchRepository(dbConn),
		close:       dbConn.Close,
	}
}
