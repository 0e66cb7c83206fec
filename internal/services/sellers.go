package services

import (
	"context"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type SellerService struct {
	c *httpclient.Client
}

func (s *SellerService) List(ctx context.Context) ([]types.Seller, error) {
	return httpclient.Get[[]types.Seller](ctx, s.c, "/sellers", nil)
}

func (s *SellerService) Get(ctx context.Context, id int) (types.Seller, error) {
	return httpclient.Get[types.Seller](ctx, s.c, resourcePath("sellers", idSegment(id)), nil)
}

func (s *SellerService) Create(ctx context.Context, form types.SellerForm) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, "/sellers", form)
	return err
}

func (s *SellerService) Update(ctx context.Context, id int, form types.SellerForm) error {
	_, err := httpclient.Put[httpclient.Empty](ctx, s.c, resourcePath("sellers", idSegment(id)), form)
	return err
}

func (s *SellerService) Delete(ctx context.Context, id int) error {
	_, err := httpclient.Delete[httpclient.Empty](ctx, s.c, resourcePath("sellers", idSegment(id)))
	return err
}

// BalanceSheet returns what the event currently owes the seller.
func (s *SellerService) BalanceSheet(ctx context.Context, id int) (types.SellerBalanceSheet, error) {
	return httpclient.Get[types.SellerBalanceSheet](ctx, s.c, resourcePath("sellers", idSegment(id), "bilan"), nil)
}

func (s *SellerService) Deposits(ctx context.Context, id int) ([]types.Deposit, error) {
	return httpclient.Get[[]types.Deposit](ctx, s.c, resourcePath("sellers", idSegment(id), "deposits"), nil)
}

func (s *SellerService) CreateDeposit(ctx context.Context, id int, form types.DepositForm) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, resourcePath("sellers", idSegment(id), "deposits"), form)
	return err
}

// Withdraw pays out the seller's credit.
func (s *SellerService) Withdraw(ctx context.Context, id int) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, resourcePath("sellers", idSegment(id), "financial-withdrawal"), nil)
	return err
}
