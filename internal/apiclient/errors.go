package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBody = 64 * 1024

var (
	// ErrUnauthorized marks a backend 401. Handlers treat it globally:
	// drop the console session and send the admin back to sign-in.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a backend 404. For optional child resources
	// (grammar topics) absence is a valid state, not a failure.
	ErrNotFound = errors.New("not found")
)

// APIError is any non-2xx backend response with its raw body preserved so
// a human-readable message can be extracted later.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Message extracts a displayable message from the error body, in priority
// order: a string "detail" field, an array "detail" joined with commas, a
// "message" field, a bare JSON string body, then the fallback.
func (e *APIError) Message(fallback string) string {
	if len(e.Body) == 0 {
		return fallback
	}

	var asString string
	if err := json.Unmarshal(e.Body, &asString); err == nil && asString != "" {
		return asString
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err != nil {
		return fallback
	}

	if len(envelope.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(envelope.Detail, &detail); err == nil && detail != "" {
			return detail
		}

		var items []json.RawMessage
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				var entry struct {
					Msg string `json:"msg"`
				}
				if err := json.Unmarshal(item, &entry); err == nil && entry.Msg != "" {
					parts = append(parts, entry.Msg)
					continue
				}
				var plain string
				if err := json.Unmarshal(item, &plain); err == nil && plain != "" {
					parts = append(parts, plain)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
	}

	if envelope.Message != "" {
		return envelope.Message
	}

	return fallback
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Message resolves err to a toast-ready string, falling back when the error
// carries no backend body (network failures and the like).
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}
