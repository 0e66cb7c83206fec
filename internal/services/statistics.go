package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type StatisticsService struct {
	c *httpclient.Client
}

func (s *StatisticsService) Turnover(ctx context.Context) (types.TurnoverStatistics, error) {
	return httpclient.Get[types.TurnoverStatistics](ctx, s.c, "/statistics/turnover-statistics", nil)
}

func (s *StatisticsService) FinancialStatement(ctx context.Context) (types.FinancialStatement, error) {
	return httpclient.Get[types.FinancialStatement](ctx, s.c, "/statistics/financial-statement", nil)
}

func (s *StatisticsService) SalesByCategory(ctx context.Context) ([]types.CategorySales, error) {
	return httpclient.Get[[]types.CategorySales](ctx, s.c, "/statistics/sells-by-category", nil)
}

func (s *StatisticsService) TopSeller(ctx context.Context) (types.TopSeller, error) {
	return httpclient.Get[types.TopSeller](ctx, s.c, "/statistics/top-seller", nil)
}
