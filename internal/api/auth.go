package api

import "context"

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/api/auth/login", req, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/api/auth/register", req, &resp)
	return resp, err
}

// ValidateToken asks the backend whether a stored credential is still good.
func (c *Client) ValidateToken(ctx context.Context, token string) (TokenValidation, error) {
	var resp TokenValidation
	err := c.post(ctx, "/api/auth/validate", map[string]string{"token": token}, &resp)
	return resp, err
}

// UserForToken fetches the full profile behind a validated credential.
func (c *Client) UserForToken(ctx context.Context, token string) (User, error) {
	var user User
	err := c.WithToken(token).get(ctx, "/api/auth/me", &user)
	return user, err
}
