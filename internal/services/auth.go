package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type AuthService struct {
	c *httpclient.Client
}

// Login exchanges credentials for an access token. Storing the token is the
// caller's concern.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.AuthResponse, error) {
	return httpclient.Post[types.AuthResponse](ctx, s.c, "/auth/login", types.LoginRequest{
		Email:    email,
		Password: password,
	})
}

func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (types.AuthResponse, error) {
	return httpclient.Post[types.AuthResponse](ctx, s.c, "/auth/register", req)
}
