package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/jwtx"
	"github.com/republichq/republic/pkg/republicsdk"
	"github.com/republichq/republic/pkg/slogx"
)

type AccountHandler struct {
	AccountService *service.AccountService
	Sessions       Sessions
	Cookie         httpx.CookieConfig
}

// HandleRegister godoc
//
//	@Summary		Register an account
//	@Tags			Accounts
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			nome			formData	string							true	"Display name"
//	@Param			email			formData	string							true	"E-mail, unique"
//	@Param			senha			formData	string							true	"Password"
//	@Param			telefone		formData	string							false	"Phone"
//	@Param			tipo_usuario	formData	string							false	"User type, e.g. proprietario or inquilino"
//	@Success		201				{object}	republicsdk.RegisterResponse	"user_id"
//	@Failure		400				{object}	republicsdk.ErrorResponse		"missing field"
//	@Failure		409				{object}	republicsdk.ErrorResponse		"e-mail already registered"
//	@Failure		500				{object}	republicsdk.ErrorResponse		"storage failure"
//	@Router			/v1/register [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		invalidRequest(w, "Invalid form data")
		return
	}

	in := service.RegisterInput{
		Name:     r.PostFormValue("nome"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("senha"),
		Phone:    r.PostFormValue("telefone"),
		UserType: r.PostFormValue("tipo_usuario"),
	}
	if field := firstMissing(map[string]string{"nome": in.Name, "email": in.Email, "senha": in.Password}); field != "" {
		invalidRequest(w, field+" is required")
		return
	}

	id, err := h.AccountService.Register(ctx, in)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		republicsdk.ErrDuplicateEmail.WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidInput):
		invalidRequest(w, "nome, email and senha are required")
		return
	case err != nil:
		slogx.FromContext(ctx).Error("register failed", "err", err)
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, republicsdk.RegisterResponse{UserID: id})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Sets the session cookie on success. Unknown e-mail and wrong password get the same reply.
//	@Tags			Accounts
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email	formData	string						true	"E-mail"
//	@Param			senha	formData	string						true	"Password"
//	@Success		200		{object}	republicsdk.LoginResponse	"user_id, tipo_usuario"
//	@Failure		400		{object}	republicsdk.ErrorResponse	"missing field"
//	@Failure		401		{object}	republicsdk.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	republicsdk.ErrorResponse	"rate limited"
//	@Router			/v1/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		invalidRequest(w, "Invalid form data")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("senha")
	if email == "" || password == "" {
		invalidRequest(w, "email and senha are required")
		return
	}

	u, err := h.AccountService.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		log.Info("login rejected")
		republicsdk.ErrInvalidCredentials.WriteError(w)
		return
	case err != nil:
		log.Error("login failed", "err", err)
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	claims := jwtx.NewSessionClaims(u.ID, u.UserType, h.Sessions.Issuer(), h.Cookie.TTL, time.Now())
	token, err := h.Sessions.Sign(claims)
	if err != nil {
		log.Error("failed to sign session", "err", err)
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.SetSessionCookie(w, token, h.Cookie)
	log.Info("user logged in", "user_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, republicsdk.LoginResponse{UserID: u.ID, UserType: u.UserType})
}

// HandleLogout godoc
//
//	@Summary	Log out
//	@Tags		Accounts
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	republicsdk.MessageResponse
//	@Failure	303	"not logged in"
//	@Router		/v1/logout [post].
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.Cookie)
	httpx.WriteJSON(w, http.StatusOK, republicsdk.MessageResponse{Message: "Você saiu da sua conta."})
}

// HandleProfile godoc
//
//	@Summary	Show the logged-in account
//	@Tags		Accounts
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{object}	republicsdk.ProfileResponse
//	@Failure	303	"not logged in"
//	@Failure	404	{object}	republicsdk.ErrorResponse	"account no longer exists"
//	@Router		/v1/profile [get].
func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	p, err := h.AccountService.Profile(ctx, userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		republicsdk.ErrNotFound.WriteError(w)
		return
	case err != nil:
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.ProfileResponse{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		Phone:             p.Phone,
		UserType:          p.UserType,
		DeletionRequested: p.DeletionRequested,
	})
}

// HandleUpdateProfile godoc
//
//	@Summary		Update the logged-in account
//	@Description	Overwrites name, e-mail, password and phone together.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			nome		formData	string	true	"Display name"
//	@Param			email		formData	string	true	"E-mail"
//	@Param			senha		formData	string	true	"New password"
//	@Param			telefone	formData	string	false	"Phone"
//	@Success		200			{object}	republicsdk.MessageResponse
//	@Failure		400			{object}	republicsdk.ErrorResponse	"missing field"
//	@Failure		409			{object}	republicsdk.ErrorResponse	"e-mail already registered"
//	@Router			/v1/profile [post].
func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		invalidRequest(w, "Invalid form data")
		return
	}

	err := h.AccountService.UpdateProfile(ctx, userID, service.ProfileInput{
		Name:     r.PostFormValue("nome"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("senha"),
		Phone:    r.PostFormValue("telefone"),
	})
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		invalidRequest(w, "nome, email and senha are required")
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		republicsdk.ErrDuplicateEmail.WriteError(w)
		return
	case errors.Is(err, service.ErrUserNotFound):
		republicsdk.ErrNotFound.WriteError(w)
		return
	case err != nil:
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.MessageResponse{Message: "Perfil atualizado com sucesso."})
}

// HandleDeletionRequest godoc
//
//	@Summary		Ask for account deletion
//	@Description	Flags the account; an administrator performs the deletion.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Produce		json
//	@Success		202	{object}	republicsdk.MessageResponse
//	@Failure		404	{object}	republicsdk.ErrorResponse	"account no longer exists"
//	@Router			/v1/profile/deletion-request [post].
func (h *AccountHandler) HandleDeletionRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	err := h.AccountService.RequestDeletion(ctx, userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		republicsdk.ErrNotFound.WriteError(w)
		return
	case err != nil:
		republicsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, republicsdk.MessageResponse{
		Message: "Solicitação de exclusão enviada. Um administrador irá analisá-la.",
	})
}
