package questrade

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

// GetData gets JSON from the Questrade API for endpoint and returns it decoded
// into maps, slices and scalars. params, which may be nil, build the query string.
// Any non-2xx status fails the call with an *httpwrap.HTTPError.
func (c *Client) GetData(ctx context.Context, endpoint string, params url.Values) (any, error) {
	var data any
	if err := c.GetJSON(ctx, endpoint, params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetJSON is GetData decoding into target.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, target any) error {
	logrus.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"params":   params.Encode(),
	}).Info("Requesting Questrade API")

	if err := c.client.GetJSON(ctx, endpoint, params, nil, target); err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	return nil
}
