package republicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ForgotPassword asks for a reset link. The reply is the same whether or not
// the email is registered.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.postForm(ctx, "/v1/password/forgot", url.Values{"email": {email}})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// CheckResetToken returns ErrInvalidToken for unknown or expired tokens.
func (c *Client) CheckResetToken(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodGet, "/v1/password/reset/"+url.PathEscape(token), "", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	resp, err := c.postForm(ctx, "/v1/password/reset/"+url.PathEscape(token), url.Values{
		"nova_senha":     {newPassword},
		"confirma_senha": {confirmPassword},
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
