package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathGoogle         = "/auth/google"
	pathGoogleCallback = "/auth/google/callback"
)

func (c *Client) authenticate(ctx context.Context, path string, body any) (*models.AuthPayload, error) {
	var p models.AuthPayload
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, public: true}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthPayload, error) {
	return c.authenticate(ctx, pathLogin, req)
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error) {
	return c.authenticate(ctx, pathRegister, req)
}

// GoogleLogin exchanges an access token obtained by the implicit flow.
func (c *Client) GoogleLogin(ctx context.Context, req models.GoogleTokenRequest) (*models.AuthPayload, error) {
	return c.authenticate(ctx, pathGoogle, req)
}

// GoogleCallback exchanges the authorization code from the OAuth redirect.
func (c *Client) GoogleCallback(ctx context.Context, req models.GoogleCodeRequest) (*models.AuthPayload, error) {
	return c.authenticate(ctx, pathGoogleCallback, req)
}
