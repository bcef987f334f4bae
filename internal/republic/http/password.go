package http

import (
	"errors"
	"net/http"

	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/republicsdk"
	"github.com/republichq/republic/pkg/slogx"
)

const forgotReply = "Se o e-mail estiver cadastrado, você receberá um link para redefinir sua senha."

type PasswordResetHandler struct {
	ResetService *service.ResetService
}

// HandleForgot godoc
//
//	@Summary		Request a password reset link
//	@Description	Replies the same way whether or not the e-mail is registered.
//	@Tags			Password
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email	formData	string	true	"E-mail"
//	@Success		200		{object}	republicsdk.MessageResponse
//	@Failure		400		{object}	republicsdk.ErrorResponse	"missing e-mail"
//	@Failure		502		{object}	republicsdk.ErrorResponse	"mail provider rejected the message"
//	@Router			/v1/password/forgot [post].
func (h *PasswordResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		invalidRequest(w, "Invalid form data")
		return
	}
	email := r.PostFormValue("email")
	if email == "" {
		invalidRequest(w, "email is required")
		return
	}

	err := h.ResetService.RequestReset(ctx, email)
	switch {
	case errors.Is(err, service.ErrEmailDispatch):
		republicsdk.ErrEmailDispatch.WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("password reset request failed", "err", err)
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.MessageResponse{Message: forgotReply})
}

// HandleCheck godoc
//
//	@Summary	Check a reset link
//	@Tags		Password
//	@Produce	json
//	@Param		token	path		string	true	"Token from the e-mailed link"
//	@Success	200		{object}	republicsdk.ResetTokenResponse
//	@Failure	400		{object}	republicsdk.ErrorResponse	"invalid or expired"
//	@Router		/v1/password/reset/{token} [get].
func (h *PasswordResetHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	_, err := h.ResetService.ValidateToken(r.Context(), r.PathValue("token"))
	switch {
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		republicsdk.ErrInvalidToken.WriteError(w)
		return
	case err != nil:
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.ResetTokenResponse{Valid: true})
}

// HandleReset godoc
//
//	@Summary		Set a new password
//	@Description	Consumes the token on success. A mismatch leaves the token usable.
//	@Tags			Password
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			token			path		string	true	"Token from the e-mailed link"
//	@Param			nova_senha		formData	string	true	"New password"
//	@Param			confirma_senha	formData	string	true	"New password again"
//	@Success		200				{object}	republicsdk.MessageResponse
//	@Failure		400				{object}	republicsdk.ErrorResponse	"invalid token, mismatch or empty password"
//	@Router			/v1/password/reset/{token} [post].
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		invalidRequest(w, "Invalid form data")
		return
	}

	err := h.ResetService.CompleteReset(ctx,
		r.PathValue("token"),
		r.PostFormValue("nova_senha"),
		r.PostFormValue("confirma_senha"),
	)
	switch {
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		republicsdk.ErrInvalidToken.WriteError(w)
		return
	case errors.Is(err, service.ErrPasswordMismatch):
		republicsdk.ErrPasswordMismatch.WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidInput):
		invalidRequest(w, "nova_senha is required")
		return
	case err != nil:
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.MessageResponse{
		Message: "Sua senha foi redefinida com sucesso! Faça login com a nova senha.",
	})
}
