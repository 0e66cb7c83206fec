package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chupacabra/chupacabra/internal/common/eventbus"
	"github.com/chupacabra/chupacabra/internal/credstore"
	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type fakeAuth struct {
	resp  types.AuthResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (types.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func TestParseToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name    string
		token   string
		want    User
		wantErr error
	}{
		{
			name:  "manager",
			token: signToken(t, jwt.MapClaims{"id": 7, "permissionLevel": 1, "exp": exp.Unix()}),
			want:  User{ID: 7, PermissionLevel: types.PermissionManager, ExpiresAt: exp},
		},
		{
			name:  "no exp",
			token: signToken(t, jwt.MapClaims{"id": 3, "permissionLevel": 2}),
			want:  User{ID: 3, PermissionLevel: types.PermissionAdmin},
		},
		{
			name:    "missing id",
			token:   signToken(t, jwt.MapClaims{"permissionLevel": 0}),
			wantErr: ErrMissingClaims,
		},
		{
			name:    "unknown level",
			token:   signToken(t, jwt.MapClaims{"id": 1, "permissionLevel": 9}),
			wantErr: ErrMissingClaims,
		},
		{
			name:    "not a jwt",
			token:   "definitely-not-a-token",
			wantErr: ErrMalformedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.PermissionLevel, got.PermissionLevel)
			assert.True(t, tt.want.ExpiresAt.Equal(got.ExpiresAt))
		})
	}
}

func TestNewLoadsStoredUser(t *testing.T) {
	store := credstore.NewMemory()
	store.Save(signToken(t, jwt.MapClaims{"id": 42, "permissionLevel": 0, "exp": time.Now().Add(time.Hour).Unix()}))

	h := New(store, nil, nil)
	defer h.Close()

	u, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, 42, u.ID)
	assert.Equal(t, types.PermissionUser, u.PermissionLevel)
}

func TestNewDiscardsExpiredToken(t *testing.T) {
	store := credstore.NewMemory()
	store.Save(signToken(t, jwt.MapClaims{"id": 1, "permissionLevel": 2, "exp": time.Now().Add(-time.Minute).Unix()}))

	h := New(store, nil, nil)
	defer h.Close()

	_, ok := h.Current()
	assert.False(t, ok)
	_, stored := store.Read()
	assert.False(t, stored)
}

func TestNewDiscardsUnreadableToken(t *testing.T) {
	store := credstore.NewMemory()
	store.Save("garbage")

	h := New(store, nil, nil)
	defer h.Close()

	_, ok := h.Current()
	assert.False(t, ok)
	_, stored := store.Read()
	assert.False(t, stored)
}

func TestMissingClaimsKeepToken(t *testing.T) {
	store := credstore.NewMemory()
	token := signToken(t, jwt.MapClaims{"sub": "someone"})
	store.Save(token)

	h := New(store, nil, nil)
	defer h.Close()

	_, ok := h.Current()
	assert.False(t, ok)
	got, stored := store.Read()
	require.True(t, stored)
	assert.Equal(t, token, got)
}

func TestCurrentHonorsClock(t *testing.T) {
	now := time.Now()
	store := credstore.NewMemory()
	store.Save(signToken(t, jwt.MapClaims{"id": 5, "permissionLevel": 1, "exp": now.Add(time.Minute).Unix()}))

	clock := now
	h := New(store, nil, nil, WithClock(func() time.Time { return clock }))
	defer h.Close()

	_, ok := h.Current()
	require.True(t, ok)

	clock = now.Add(2 * time.Minute)
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestLoginAndLogout(t *testing.T) {
	store := credstore.NewMemory()
	token := signToken(t, jwt.MapClaims{"id": 9, "permissionLevel": 2, "exp": time.Now().Add(time.Hour).Unix()})
	auth := &fakeAuth{resp: types.AuthResponse{AccessToken: token, MemberID: 9}}

	h := New(store, nil, auth)
	defer h.Close()

	u, err := h.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 9, u.ID)
	assert.Equal(t, 1, auth.calls)

	stored, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, token, stored)

	h.Logout()
	_, ok = h.Current()
	assert.False(t, ok)
	_, ok = store.Read()
	assert.False(t, ok)
}

func TestLoginFailureLeavesStateAlone(t *testing.T) {
	store := credstore.NewMemory()
	loginErr := errors.New("bad credentials")
	h := New(store, nil, &fakeAuth{err: loginErr})
	defer h.Close()

	_, err := h.Login(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, loginErr)
	_, ok := store.Read()
	assert.False(t, ok)
}

func TestLoginWithoutAuthenticator(t *testing.T) {
	h := New(credstore.NewMemory(), nil, nil)
	defer h.Close()

	_, err := h.Login(context.Background(), "a@b.c", "x")
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	store := credstore.NewMemory()
	h := New(store, nil, nil)
	defer h.Close()

	assert.ErrorIs(t, h.Require(types.PermissionUser), ErrNotLoggedIn)

	store.Save(signToken(t, jwt.MapClaims{"id": 2, "permissionLevel": 1}))
	h.Reload()

	assert.NoError(t, h.Require(types.PermissionUser))
	assert.NoError(t, h.Require(types.PermissionManager))
	assert.ErrorIs(t, h.Require(types.PermissionAdmin), ErrForbidden)
}

func TestExpiryEventClearsUser(t *testing.T) {
	bus := eventbus.New()
	defer bus.Shutdown()

	store := credstore.NewMemory()
	store.Save(signToken(t, jwt.MapClaims{"id": 11, "permissionLevel": 0}))

	expired := make(chan struct{}, 1)
	h := New(store, bus, nil, WithOnExpired(func() { expired <- struct{}{} }))
	defer h.Close()

	_, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, 1, bus.SubscriberCount(eventbus.TopicSessionExpired))

	assert.Equal(t, 1, bus.Publish(eventbus.TopicSessionExpired, nil, time.Second))

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("expiry callback not invoked")
	}
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestCloseUnsubscribes(t *testing.T) {
	bus := eventbus.New()
	defer bus.Shutdown()

	h := New(credstore.NewMemory(), bus, nil)
	require.Equal(t, 1, bus.SubscriberCount(eventbus.TopicSessionExpired))

	h.Close()
	h.Close()
	assert.Equal(t, 0, bus.SubscriberCount(eventbus.TopicSessionExpired))
	assert.Equal(t, 0, bus.Publish(eventbus.TopicSessionExpired, nil, 0))
}
