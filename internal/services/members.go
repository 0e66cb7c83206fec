package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type MemberService struct {
	c *httpclient.Client
}

func (s *MemberService) List(ctx context.Context) ([]types.Member, error) {
	return httpclient.Get[[]types.Member](ctx, s.c, "/members", nil)
}

func (s *MemberService) Get(ctx context.Context, id int) (types.Member, error) {
	return httpclient.Get[types.Member](ctx, s.c, resourcePath("members", idSegment(id)), nil)
}

func (s *MemberService) Create(ctx context.Context, form types.MemberForm) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, "/members", form)
	return err
}

func (s *MemberService) Update(ctx context.Context, id int, form types.MemberForm) error {
	_, err := httpclient.Put[httpclient.Empty](ctx, s.c, resourcePath("members", idSegment(id)), form)
	return err
}

func (s *MemberService) Delete(ctx context.Context, id int) error {
	_, err := httpclient.Delete[httpclient.Empty](ctx, s.c, resourcePath("members", idSegment(id)))
	return err
}
