package republicsdk

import (
	"context"
	"net/http"
)

// TrackClick records one occurrence of eventName.
func (c *Client) TrackClick(ctx context.Context, eventName string) error {
	resp, err := c.postJSON(ctx, "/track_click", TrackClickRequest{EventName: eventName})
	if err != nil {
		return err
	}

	var out TrackClickResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}
	return nil
}
