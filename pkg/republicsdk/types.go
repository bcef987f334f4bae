package republicsdk

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// MessageResponse carries a user-facing message for operations with no
// other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	UserType string
}

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

type LoginResponse struct {
	UserID   int64  `json:"user_id"`
	UserType string `json:"tipo_usuario"`
}

type UpdateProfileRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type ProfileResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"nome"`
	Email             string `json:"email"`
	Phone             string `json:"telefone"`
	UserType          string `json:"tipo_usuario"`
	DeletionRequested bool   `json:"solicitacao_exclusao"`
}

// ResetTokenResponse reports whether a reset link can still be used.
type ResetTokenResponse struct {
	Valid bool `json:"valid"`
}

type TrackClickRequest struct {
	EventName string `json:"event_name"`
}

// TrackClickResponse is written for every outcome of /track_click. Error is
// set on failures so clients can branch on it like any other error reply.
type TrackClickResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
