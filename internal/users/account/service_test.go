// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/users/account"
	"github.com/minhngo/travia/internal/users/auth"
)

type fakeAccountRepository struct {
	rows    map[string]*auth.User
	deleted map[string]bool
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{rows: map[string]*auth.User{}, deleted: map[string]bool{}}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.rows[id]
	if !ok || f.deleted[id] {
		return nil, apperr.NotFound("Account")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.rows[user.ID]; !ok || f.deleted[user.ID] {
		return apperr.NotFound("Account")
	}
	clone := *user
	f.rows[user.ID] = &clone
	return nil
}

func (f *fakeAccountRepository) ListActive(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	var out []*auth.User
	for id, user := range f.rows {
		if !f.deleted[id] {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeAccountRepository) ListByRole(_ context.Context, role sec.UserRole, limit, offset int) ([]*auth.User, int, error) {
	var out []*auth.User
	for id, user := range f.rows {
		if !f.deleted[id] && user.Role == role {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	f.deleted[id] = true
	return nil
}

func (f *fakeAccountRepository) Restore(_ context.Context, id string) error {
	if !f.deleted[id] {
		return apperr.NotFound("Deleted account")
	}
	delete(f.deleted, id)
	return nil
}

type fakeSessionRepository struct {
	revoked map[string]bool
	byUser  map[string][]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{revoked: map[string]bool{}, byUser: map[string][]string{}}
}

func (f *fakeSessionRepository) FindActiveByUserID(_ context.Context, userID string) ([]account.SessionInfo, error) {
	var out []account.SessionInfo
	for _, id := range f.byUser[userID] {
		if !f.revoked[id] {
			out = append(out, account.SessionInfo{ID: id, ExpiresAt: time.Now().Add(time.Hour)})
		}
	}
	return out, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, userID, sessionID string) error {
	for _, id := range f.byUser[userID] {
		if id == sessionID && !f.revoked[id] {
			f.revoked[id] = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, id := range f.byUser[userID] {
		if id != currentSessionID {
			f.revoked[id] = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, id := range f.byUser[userID] {
		f.revoked[id] = true
	}
	return nil
}

func newService(t *testing.T) (*account.Service, *fakeAccountRepository, *fakeSessionRepository) {
	t.Helper()
	accounts := newFakeAccountRepository()
	sessions := newFakeSessionRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(accounts, sessions, logger), accounts, sessions
}

func seedUser(repo *fakeAccountRepository, id string, role sec.UserRole) {
	repo.rows[id] = &auth.User{ID: id, Username: "user-" + id, Role: role}
}

func TestUpdateProfile_AppliesOnlyProvidedFields(t *testing.T) {
	service, accounts, _ := newService(t)
	seedUser(accounts, "u1", sec.RoleMember)
	accounts.rows["u1"].DisplayName = "Original"
	accounts.rows["u1"].Bio = "Old bio"

	bio := "New bio"
	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.DisplayName)
	assert.Equal(t, "New bio", updated.Bio)
}

func TestDeleteAccount_RevokesAllSessions(t *testing.T) {
	service, accounts, sessions := newService(t)
	seedUser(accounts, "u1", sec.RoleMember)
	sessions.byUser["u1"] = []string{"s1", "s2"}

	require.NoError(t, service.DeleteAccount(context.Background(), "u1"))

	assert.True(t, accounts.deleted["u1"])
	assert.True(t, sessions.revoked["s1"])
	assert.True(t, sessions.revoked["s2"])
}

func TestRestoreAccount_DoesNotResurrectSessions(t *testing.T) {
	service, accounts, sessions := newService(t)
	seedUser(accounts, "u1", sec.RoleEditor)
	sessions.byUser["u1"] = []string{"s1"}

	require.NoError(t, service.DeleteAccount(context.Background(), "u1"))
	require.NoError(t, service.RestoreAccount(context.Background(), "u1"))

	active, err := service.ListSessions(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRestoreAccount_RequiresDeletedAccount(t *testing.T) {
	service, accounts, _ := newService(t)
	seedUser(accounts, "u1", sec.RoleMember)

	err := service.RestoreAccount(context.Background(), "u1")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestListUsersByRole_RejectsUnknownRole(t *testing.T) {
	service, _, _ := newService(t)

	_, _, err := service.ListUsersByRole(context.Background(), "superuser", 20, 0)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestListUsersByRole_FiltersByRole(t *testing.T) {
	service, accounts, _ := newService(t)
	seedUser(accounts, "u1", sec.RoleEditor)
	seedUser(accounts, "u2", sec.RoleMember)

	editors, total, err := service.ListUsersByRole(context.Background(), "editor", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, editors, 1)
	assert.Equal(t, "u1", editors[0].ID)
}
