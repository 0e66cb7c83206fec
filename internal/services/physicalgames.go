package services

import (
	"context"
	"fmt"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type PhysicalGameService struct {
	c *httpclient.Client
}

// ListUnlabelled returns deposited copies still waiting for a label.
func (s *PhysicalGameService) ListUnlabelled(ctx context.Context) ([]types.PhysicalGame, error) {
	return httpclient.Get[[]types.PhysicalGame](ctx, s.c, "/physical-games", nil)
}

func (s *PhysicalGameService) ByBarcode(ctx context.Context, barcode string) (types.PhysicalGame, error) {
	return httpclient.Get[types.PhysicalGame](ctx, s.c, resourcePath("physical-games", "by-barcode", barcode), nil)
}

// UpdateStatus moves every listed copy to status in one call.
func (s *PhysicalGameService) UpdateStatus(ctx context.Context, ids []int, status types.PhysicalGameStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown physical game status %q", status)
	}
	_, err := httpclient.Put[httpclient.Empty](ctx, s.c, "/physical-games", types.PhysicalGameStatusUpdate{
		IDs:    ids,
		Status: status,
	})
	return err
}

func (s *PhysicalGameService) ForSaleBarcodes(ctx context.Context) ([]string, error) {
	return httpclient.Get[[]string](ctx, s.c, "/physical-games/for-sale-barcodes", nil)
}
