// Package session owns the identity of the logged-in member. It derives the
// user from the stored access token and drops it when the API client reports
// that the session expired.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chupacabra/chupacabra/internal/common/eventbus"
	"github.com/chupacabra/chupacabra/internal/credstore"
	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("insufficient permission")
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (types.AuthResponse, error)
}

// Holder tracks the current user. Create one per process with New and
// release it with Close.
type Holder struct {
	store credstore.Store
	auth  Authenticator
	now   func() time.Time

	mu   sync.RWMutex
	user *User

	onExpired   func()
	unsubscribe func()
	done        chan struct{}
	closeOnce   sync.Once
}

// Option customizes a Holder.
type Option func(*Holder)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Holder) {
		h.now = now
	}
}

// WithOnExpired registers a callback run after the user has been cleared in
// response to a session-expired event.
func WithOnExpired(fn func()) Option {
	return func(h *Holder) {
		h.onExpired = fn
	}
}

// New loads the user from the stored token and subscribes to session expiry
// on bus. bus may be nil.
func New(store credstore.Store, bus *eventbus.EventBus, auth Authenticator, opts ...Option) *Holder {
	h := &Holder{
		store: store,
		auth:  auth,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.Reload()

	if bus == nil {
		close(h.done)
		h.unsubscribe = func() {}
		return h
	}
	events, unsubscribe := bus.Subscribe(eventbus.TopicSessionExpired, 1)
	h.unsubscribe = unsubscribe
	go h.listen(events)
	return h
}

func (h *Holder) listen(events <-chan eventbus.Event) {
	defer close(h.done)
	for range events {
		log.Info().Msg("session expired, clearing current user")
		h.clear()
		if h.onExpired != nil {
			h.onExpired()
		}
	}
}

// Close unsubscribes from the bus and waits for the listener to exit.
func (h *Holder) Close() {
	h.closeOnce.Do(func() {
		h.unsubscribe()
		<-h.done
	})
}

// Reload derives the user from the stored token. An expired or unreadable
// token is deleted; a token without the expected claims leaves no user but
// stays stored.
func (h *Holder) Reload() {
	token, ok := h.store.Read()
	if !ok {
		h.clear()
		return
	}
	u, err := ParseToken(token)
	switch {
	case errors.Is(err, ErrMalformedToken):
		log.Warn().Err(err).Msg("discarding unreadable access token")
		h.store.Delete()
		h.clear()
	case u.Expired(h.now()):
		log.Info().Time("expired_at", u.ExpiresAt).Msg("discarding expired access token")
		h.store.Delete()
		h.clear()
	case err != nil:
		log.Warn().Err(err).Msg("access token has no usable identity")
		h.clear()
	default:
		h.set(u)
	}
}

// Login authenticates, stores the token and loads the user from it.
func (h *Holder) Login(ctx context.Context, email, password string) (User, error) {
	if h.auth == nil {
		return User{}, errors.New("no authenticator configured")
	}
	resp, err := h.auth.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	if resp.AccessToken == "" {
		return User{}, errors.New("login response carried no access token")
	}
	h.store.Save(resp.AccessToken)
	h.Reload()
	u, ok := h.Current()
	if !ok {
		return User{}, ErrMissingClaims
	}
	return u, nil
}

// Logout forgets the token and the user.
func (h *Holder) Logout() {
	h.store.Delete()
	h.clear()
}

// Current returns the logged-in user. A user whose token has expired since
// it was loaded is reported as absent.
func (h *Holder) Current() (User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil || h.user.Expired(h.now()) {
		return User{}, false
	}
	return *h.user, true
}

// Require returns an error unless the current user has at least level.
func (h *Holder) Require(level types.PermissionLevel) error {
	u, ok := h.Current()
	if !ok {
		return ErrNotLoggedIn
	}
	if u.PermissionLevel < level {
		return fmt.Errorf("%w: %s required, have %s", ErrForbidden, level, u.PermissionLevel)
	}
	return nil
}

func (h *Holder) set(u User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.user = &u
}

func (h *Holder) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.user = nil
}
