// Package services exposes one typed client per server resource, all sharing
// a single httpclient.Client and therefore a single credential store.
package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/chupacabra/chupacabra/internal/common/httpclient"
)

// Services bundles every resource client.
type Services struct {
	Auth          *AuthService
	Sessions      *SessionService
	Sellers       *SellerService
	Members       *MemberService
	Games         *GameService
	PhysicalGames *PhysicalGameService
	Categories    *CategoryService
	Payments      *PaymentService
	Orders        *OrderService
	Statistics    *StatisticsService
}

// New builds every resource client on top of c.
func New(c *httpclient.Client) *Services {
	return &Services{
		Auth:          &AuthService{c: c},
		Sessions:      &SessionService{c: c},
		Sellers:       &SellerService{c: c},
		Members:       &MemberService{c: c},
		Games:         &GameService{c: c},
		PhysicalGames: &PhysicalGameService{c: c},
		Categories:    &CategoryService{c: c},
		Payments:      &PaymentService{c: c},
		Orders:        &OrderService{c: c},
		Statistics:    &StatisticsService{c: c},
	}
}

// resourcePath joins escaped segments under a leading slash.
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

func idSegment(id int) string {
	return strconv.Itoa(id)
}
