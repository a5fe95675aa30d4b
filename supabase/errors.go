package supabase

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Error is an error returned by PostgREST. Code carries either a PostgreSQL
// SQLSTATE (for example 23505) or a PGRST code.
type Error struct {
	Code       string
	Message    string
	Details    string
	Hint       string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase error %d: %s", e.StatusCode, e.Message)
}

func parseError(body []byte, statusCode int) error {
	if !gjson.ValidBytes(body) {
		return &Error{Code: "unknown", Message: string(body), StatusCode: statusCode}
	}

	res := gjson.ParseBytes(body)
	msg := res.Get("message").String()
	if msg == "" {
		msg = res.Get("error").String()
	}
	if msg == "" {
		msg = res.Get("error_description").String()
	}

	return &Error{
		Code:       res.Get("code").String(),
		Message:    msg,
		Details:    res.Get("details").String(),
		Hint:       res.Get("hint").String(),
		StatusCode: statusCode,
	}
}

func asError(err error) (*Error, bool) {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr, true
	}
	return nil, false
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)
