package services

import (
	"context"
	"strconv"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
	"github.com/chupacabra/chupacabra/pkg/types"
)

type GameService struct {
	c *httpclient.Client
}

func (s *GameService) List(ctx context.Context) ([]types.Game, error) {
	return httpclient.Get[[]types.Game](ctx, s.c, "/games", nil)
}

// ForSale lists catalogue games with copies on sale. The filter travels as
// query parameters; zero fields are left out.
func (s *GameService) ForSale(ctx context.Context, filter types.GameFilter) ([]types.Game, error) {
	return httpclient.Get[[]types.Game](ctx, s.c, "/games/for-sale", filterQuery(filter))
}

func (s *GameService) Create(ctx context.Context, form types.GameForm) error {
	_, err := httpclient.Post[httpclient.Empty](ctx, s.c, "/games", form)
	return err
}

func filterQuery(f types.GameFilter) map[string]string {
	q := map[string]string{}
	setString := func(key, v string) {
		if v != "" {
			q[key] = v
		}
	}
	setInt := func(key string, v int) {
		if v != 0 {
			q[key] = strconv.Itoa(v)
		}
	}
	setString("gameName", f.GameName)
	setString("publisherName", f.PublisherName)
	setString("categoryName", f.CategoryName)
	setInt("playerNumber", f.PlayerNumber)
	setInt("minimumPrice", f.MinimumPrice)
	setInt("maximumPrice", f.MaximumPrice)
	if len(q) == 0 {
		return nil
	}
	return q
}
