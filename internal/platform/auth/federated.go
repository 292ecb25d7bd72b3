package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// sessionDataURL is a fixed trust anchor. It is deliberately not part of the
// configuration: a configurable or redirect-following endpoint here would let
// a misconfigured deployment hand session ids to an attacker-chosen host.
const sessionDataURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

var ErrSessionRejected = errors.New("external session rejected")

// SessionData are the identity attributes the external provider vouches for.
type SessionData struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type FederatedClient struct {
	http *resty.Client
	url  string
}

func NewFederatedClient() *FederatedClient {
	return &FederatedClient{
		http: resty.New().SetTimeout(10 * time.Second),
		url:  sessionDataURL,
	}
}

// Exchange resolves an opaque external session id into verified identity
// attributes. Any non-2xx response from the provider is treated as a
// rejected session.
func (c *FederatedClient) Exchange(ctx context.Context, sessionID string) (*SessionData, error) {
	var data SessionData

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Session-ID", sessionID).
		SetResult(&data).
		Get(c.url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, ErrSessionRejected
	}

	return &data, nil
}
