package republicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates an account and returns its id.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (int64, error) {
	resp, err := c.postForm(ctx, "/v1/register", url.Values{
		"nome":         {r.Name},
		"email":        {r.Email},
		"senha":        {r.Password},
		"telefone":     {r.Phone},
		"tipo_usuario": {r.UserType},
	})
	if err != nil {
		return 0, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.postForm(ctx, "/v1/login", url.Values{
		"email": {email},
		"senha": {password},
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/logout", "", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/profile", "", nil)
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, r UpdateProfileRequest) error {
	resp, err := c.postForm(ctx, "/v1/profile", url.Values{
		"nome":     {r.Name},
		"email":    {r.Email},
		"senha":    {r.Password},
		"telefone": {r.Phone},
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// RequestDeletion asks an administrator to remove the logged-in account.
func (c *Client) RequestDeletion(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/profile/deletion-request", "", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusAccepted)
}
