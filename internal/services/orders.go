package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type OrderService struct {
	c *httpclient.Client
}

// Place sells the listed copies and returns the resulting transaction.
func (s *OrderService) Place(ctx context.Context, req types.OrderRequest) (types.OrderResponse, error) {
	return httpclient.Post[types.OrderResponse](ctx, s.c, "/orders", req)
}

func (s *OrderService) SendInvoice(ctx context.Context, req types.InvoiceRequest) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, "/orders/invoice", req)
	return err
}
