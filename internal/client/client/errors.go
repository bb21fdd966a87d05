package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

var (
	ErrNetwork      = errors.New("network error, please check your connection")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadResponse marks a 2xx body that could not be decoded or validated.
	ErrBadResponse = errors.New("unexpected response from server")
)

const (
	msgServer     = "server error, please try again later"
	msgAuth       = "you are not allowed to do this, please log in again"
	msgValidation = "request failed, please check your input"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	default:
		return "validation"
	}
}

// APIError is a non-2xx response. Message holds the server's own text when
// the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Kind() Kind {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return KindAuth
	case e.StatusCode >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// Is makes auth failures match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind() == KindAuth
}

// Message returns the text a user should see for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNetwork) {
		return ErrNetwork.Error()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind() {
		case KindServer:
			return msgServer
		case KindAuth:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return msgAuth
		default:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return msgValidation
		}
	}
	if errors.Is(err, ErrBadResponse) {
		return ErrBadResponse.Error()
	}
	if errors.Is(err, models.ErrInvalidPayload) {
		return strings.TrimPrefix(err.Error(), models.ErrInvalidPayload.Error()+": ")
	}
	return err.Error()
}

// errorBody covers the shapes the API uses for failures:
// {"message": "..."}, {"error": "..."} and {"error": {"message": "..."}}.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if len(b.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Error, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}

const maxErrorBody = 64 << 10

// readAPIError consumes and closes resp.
func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = strings.TrimSpace(body.text())
	}
	return apiErr
}
