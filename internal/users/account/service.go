// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
//
// It ensures that profile updates, account administration, and session
// security cleanup follow established business constraints.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Account Administration

/*
ListUsers returns a page of active accounts for the admin console.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total active account count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, limit, offset int) ([]*auth.User, int, error) {
	return service.accountRepository.ListActive(context, limit, offset)
}

/*
ListUsersByRole returns a page of active accounts holding a specific role.

Parameters:
  - context: context.Context
  - role: string (must name a known role)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching account count
  - error: Validation or retrieval failures
*/
func (service *Service) ListUsersByRole(context context.Context, role string, limit, offset int) ([]*auth.User, int, error) {
	switch sec.UserRole(role) {
	case sec.RoleAdmin, sec.RoleEditor, sec.RoleMember:
	default:
		return nil, 0, apperr.ValidationError("Unknown role")
	}
	return service.accountRepository.ListByRole(context, sec.UserRole(role), limit, offset)
}

/*
DeleteAccount performs an idempotent soft-deletion of a user account.

Description: Flags the account as deleted and immediately terminates all active
security sessions to force a global sign-out.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if _, err := service.accountRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	// Force global revocation of sessions for the deleted account
	_ = service.sessionRepository.RevokeAll(context, userID)

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

/*
RestoreAccount reinstates a soft-deleted user account.

Description: Clears the deletion flag only. Sessions revoked at deletion
time stay revoked; the user must authenticate again.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound if no deleted account matches, or storage failures
*/
func (service *Service) RestoreAccount(context context.Context, userID string) error {
	if err := service.accountRepository.Restore(context, userID); err != nil {
		return err
	}

	service.logger.Info("user_account_restored", slog.String("user_id", userID))

	return nil
}

// # Session Security

/*
ListSessions provides a list of all active device sessions for the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: List of active devices
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	return sessions, nil
}

/*
RevokeSession terminates a specific user session by its ID.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}

	service.logger.Info("user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	return nil
}

/*
RevokeOtherSessions terminates all sessions except for the current active one.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentSessionID string) error {
	if err := service.sessionRepository.RevokeOthers(context, userID, currentSessionID); err != nil {
		return fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	service.logger.Info("user_other_sessions_revoked", slog.String("user_id", userID))

	return nil
}
