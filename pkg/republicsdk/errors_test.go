package republicsdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/republichq/republic/pkg/republicsdk"
)

func TestAPIErrorMatchesOnCode(t *testing.T) {
	err := error(&republicsdk.APIError{StatusCode: 409, Code: republicsdk.CodeDuplicateEmail, Description: "taken"})
	require.ErrorIs(t, err, republicsdk.ErrDuplicateEmail)
	require.False(t, errors.Is(err, republicsdk.ErrInvalidCredentials))
}

func TestClientDecodesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/profile":
			http.Redirect(w, r, "/v1/login", http.StatusSeeOther)
		case "/track_click":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request","error_description":"event_name is required"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()

	c := republicsdk.NewClient(srv.URL + "/")
	ctx := context.Background()

	_, err := c.Profile(ctx)
	require.ErrorIs(t, err, republicsdk.ErrNotLoggedIn)

	err = c.TrackClick(ctx, "")
	require.ErrorIs(t, err, republicsdk.ErrInvalidRequest)
	var apiErr *republicsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	_, err = c.Livez(ctx)
	require.ErrorIs(t, err, republicsdk.ErrServerError)
}
