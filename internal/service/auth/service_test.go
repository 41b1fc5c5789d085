package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepo is a lightweight in-memory user repository for tests.
type memoryUserRepo struct {
	byUsername map[string]domain.User
	seq        int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byUsername: make(map[string]domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, exists := r.byUsername[u.Username]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.seq++
	clone := u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	clone.CreatedAt = time.Now()
	r.byUsername[clone.Username] = clone
	return &clone, nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := u
	return &clone, nil
}

type memoryDraftRepo struct {
	drafts map[string]domain.Order
}

func newMemoryDraftRepo() *memoryDraftRepo {
	return &memoryDraftRepo{drafts: make(map[string]domain.Order)}
}

func (r *memoryDraftRepo) GetOpenByUser(_ context.Context, userID string) (*domain.Order, error) {
	o, ok := r.drafts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := o
	return &clone, nil
}

func newTestService(users *memoryUserRepo, drafts *memoryDraftRepo) *Service {
	return New(
		users,
		drafts,
		NewTokenManager("test-signing-key", time.Hour),
		"bootstrap-admin",
		"bootstrap-pw",
		zerolog.Nop(),
	)
}

func TestRegister_DuplicateKeepsFirstRecord(t *testing.T) {
	users := newMemoryUserRepo()
	svc := newTestService(users, newMemoryDraftRepo())
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.Len(t, users.byUsername, 1)
}

func TestRegister_BootstrapAdminGetsAdminFlag(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())
	ctx := context.Background()

	admin, err := svc.Register(ctx, "bootstrap-admin", "bootstrap-pw")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	regular, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)
}

func TestRegister_BootstrapUsernameWrongPasswordIsNotAdmin(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())

	u, err := svc.Register(context.Background(), "bootstrap-admin", "not-the-password")
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())

	_, err := svc.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "bob", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.IsAdmin)
	assert.Nil(t, result.OpenOrder)
}

func TestLogin_AdminFlagPropagates(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bootstrap-admin", "bootstrap-pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	adminResult, err := svc.Login(ctx, "bootstrap-admin", "bootstrap-pw")
	require.NoError(t, err)
	assert.True(t, adminResult.IsAdmin)

	userResult, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.False(t, userResult.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryDraftRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ReturnsOpenOrderForHydration(t *testing.T) {
	users := newMemoryUserRepo()
	drafts := newMemoryDraftRepo()
	svc := newTestService(users, drafts)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	drafts.drafts[u.ID] = domain.Order{
		ID:     "order-1",
		UserID: u.ID,
		Status: domain.StatusOpenOrder,
		Total:  decimal.RequireFromString("12.50"),
	}

	result, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotNil(t, result.OpenOrder)
	assert.Equal(t, "order-1", result.OpenOrder.ID)
	assert.Equal(t, domain.StatusOpenOrder, result.OpenOrder.Status)
}
