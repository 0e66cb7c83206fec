package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type CategoryService struct {
	c *httpclient.Client
}

func (s *CategoryService) List(ctx context.Context) ([]types.Category, error) {
	return httpclient.Get[[]types.Category](ctx, s.c, "/categories", nil)
}

type PaymentService struct {
	c *httpclient.Client
}

func (s *PaymentService) List(ctx context.Context) ([]types.PaymentMean, error) {
	return httpclient.Get[[]types.PaymentMean](ctx, s.c, "/means-payment", nil)
}
