package republicsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/republichq/republic/pkg/httpx"
)

// Error codes written in ErrorResponse.Error.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidToken       = "invalid_or_expired_token"
	CodePasswordMismatch   = "password_mismatch"
	CodeNotFound           = "not_found"
	CodeEmailDispatch      = "email_dispatch_failed"
	CodeRateLimited        = "rate_limit_exceeded"
	CodeServerError        = "server_error"
	CodeLoginRequired      = "login_required"
)

// APIError is an error reply. Handlers write it with WriteError; the client
// returns it for any unexpected status.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("republic: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// Is matches on Code, so a decoded reply matches the sentinel below.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials never says which of email or password was wrong.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        CodeInvalidCredentials,
		Description: "E-mail ou senha inválidos.",
	}

	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        CodeDuplicateEmail,
		Description: "Este e-mail já está cadastrado.",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeInvalidToken,
		Description: "O link de redefinição é inválido ou expirou.",
	}

	ErrPasswordMismatch = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodePasswordMismatch,
		Description: "As senhas não coincidem.",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        CodeNotFound,
		Description: "resource not found",
	}

	ErrEmailDispatch = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        CodeEmailDispatch,
		Description: "Não foi possível enviar o e-mail. Tente novamente mais tarde.",
	}

	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        CodeRateLimited,
		Description: "too many requests",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        CodeServerError,
		Description: "internal server error",
	}

	// ErrNotLoggedIn is returned when the server redirects to the login page.
	ErrNotLoggedIn = &APIError{
		StatusCode:  http.StatusSeeOther,
		Code:        CodeLoginRequired,
		Description: "login required",
	}
)

func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusSeeOther {
		return &APIError{StatusCode: resp.StatusCode, Code: CodeLoginRequired, Description: resp.Header.Get("Location")}
	}

	var e APIError
	if err := json.Unmarshal(body, &e); err != nil || e.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        CodeServerError,
			Description: http.StatusText(resp.StatusCode),
		}
	}
	e.StatusCode = resp.StatusCode
	return &e
}
