package republicsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to one Republic server and carries its session cookie.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with its own cookie jar. Redirects are not
// followed: a 303 to the login page surfaces as ErrNotLoggedIn.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // only fails with non-nil options
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}
