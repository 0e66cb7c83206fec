package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type SessionService struct {
	c *httpclient.Client
}

func (s *SessionService) List(ctx context.Context) ([]types.Session, error) {
	return httpclient.Get[[]types.Session](ctx, s.c, "/sessions", nil)
}

// Current returns the session whose windows include now.
func (s *SessionService) Current(ctx context.Context) (types.Session, error) {
	return httpclient.Get[types.Session](ctx, s.c, "/sessions/current", nil)
}

func (s *SessionService) Get(ctx context.Context, id int) (types.Session, error) {
	return httpclient.Get[types.Session](ctx, s.c, resourcePath("sessions", idSegment(id)), nil)
}

func (s *SessionService) Create(ctx context.Context, form types.SessionForm) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, "/sessions", form)
	return err
}

func (s *SessionService) Update(ctx context.Context, id int, form types.SessionForm) error {
	_, err := httpclient.Put[httpclient.Empty](ctx, s.c, resourcePath("sessions", idSegment(id)), form)
	return err
}

func (s *SessionService) Delete(ctx context.Context, id int) error {
	_, err := httpclient.Delete[httpclient.Empty](ctx, s.c, resourcePath("sessions", idSegment(id)))
	return err
}
