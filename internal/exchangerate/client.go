// Package exchangerate queries an external service for currency conversion
// rates.
//
// By default the client fails open: when the service is unreachable or
// returns a malformed response, the transfer proceeds at parity rate 1
// instead of aborting. During an outage this silently changes transfer
// economics, which is the historical behavior of the system; set the client
// to fail closed to surface domain.ErrRateUnavailable instead.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thewallet/wallet-bot/internal/domain"
)

// Client fetches conversion rates over HTTP. No caching, no retries.
type Client struct {
	host     string
	client   *http.Client
	failOpen bool
}

// NewClient returns a rate client for the given conversion service host.
func NewClient(host string, timeout time.Duration, failOpen bool) *Client {
	return &Client{
		host:     host,
		client:   &http.Client{Timeout: timeout},
		failOpen: failOpen,
	}
}

// Rate returns the multiplicative conversion rate between two currency
// codes. Identical codes convert at exactly 1 without an external call.
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		l := zerolog.Ctx(ctx)

		if !c.failOpen {
			l.Error().Err(err).Str("from", from).Str("to", to).Msg("rate lookup failed")
			return decimal.Decimal{}, domain.ErrRateUnavailable
		}

		l.Warn().Err(err).Str("from", from).Str("to", to).Msg("rate lookup failed, falling back to parity rate")

		return decimal.NewFromInt(1), nil
	}

	return rate, nil
}

type convertResponse struct {
	Info struct {
		Rate *float64 `json:"rate"`
	} `json:"info"`
}

func (c *Client) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/convert?from=%s&to=%s", c.host, url.QueryEscape(from), url.QueryEscape(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("conversion service returned status %d", res.StatusCode)
	}

	var body convertResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, err
	}

	if body.Info.Rate == nil {
		return decimal.Decimal{}, fmt.Errorf("conversion service response misses info.rate")
	}

	return decimal.NewFromFloat(*body.Info.Rate), nil
}
