/*
Package republicsdk is a Go client for the Republic listings API, and the home
of the request and response types the server writes.

The client keeps the session cookie set by Login in its cookie jar, so calls
made after a successful login are authenticated:

	c := republicsdk.NewClient("http://localhost:8080")

	id, err := c.Register(ctx, republicsdk.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "s3nha", UserType: "inquilino",
	})

	if err := c.Login(ctx, "ana@example.com", "s3nha"); err != nil {
		// *APIError with Code "invalid_credentials"
	}

	profile, err := c.Profile(ctx)

	// Anonymous beacon, no session needed.
	err = c.TrackClick(ctx, "contact_anunciante_click")

Errors returned by the server are *APIError values; compare them with
errors.Is against the exported sentinels (ErrNotLoggedIn, ErrDuplicateEmail,
...), which match on Code.
*/
package republicsdk
