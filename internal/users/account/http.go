// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

/*
Package account provides the HTTP delivery layer for profile and user management.

It implements the RESTful interface for users to interact with their account
data and active sessions, and the admin console endpoints for listing,
suspending, and restoring accounts.

# Security

Self-service endpoints require an authenticated session; the administration
endpoints additionally require the admin role.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minhngo/travia/internal/platform/middleware"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/platform/validate"
	"github.com/minhngo/travia/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)

		// Session Security
		r.Get("/me/sessions", handler.listSessions)
		r.Delete("/me/sessions", handler.revokeOtherSessions)
		r.Delete("/me/sessions/{id}", handler.revokeSession)
	})

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))

		r.Get("/", handler.listUsers)
		r.Get("/role/{role}", handler.listUsersByRole)
		r.Delete("/{id}", handler.deleteUser)
		r.Post("/{id}/restore", handler.restoreUser)
	})

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

/*
PATCH /api/v1/users/me.

Description: Applies a partial update to the authenticated user's profile.
Only fields present in the payload are modified.

Request:
  - Body: updateProfileRequest

Response:
  - 200: User: Updated user profile
  - 400: ErrInvalidJSON: Malformed payload
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.MaxLen("display_name", *input.DisplayName, 100)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.URL("avatar_url", *input.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
		Bio:         input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Session Endpoints

/*
GET /api/v1/users/me/sessions.

Description: Lists all active device sessions for the authenticated user.

Response:
  - 200: []SessionInfo: Active devices
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/v1/users/me/sessions/{id}.

Description: Terminates a specific session owned by the authenticated user.

Response:
  - 204: No Content: Session terminated
  - 404: ErrNotFound: Session does not exist or belongs to another user
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.ID(request, "id")
	if err := handler.accountService.RevokeSession(request.Context(), userID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/users/me/sessions.

Description: Forces a sign-out on all devices except the one making the request.

Response:
  - 204: No Content: All other sessions terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeOtherSessions(request.Context(), userID, ""); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Administration Endpoints

/*
GET /api/v1/users.

Description: Lists active accounts for the admin console, paginated.

Response:
  - 200: []User: Page of accounts with pagination metadata
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.accountService.ListUsers(request.Context(),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/users/role/{role}.

Description: Lists active accounts holding a specific role, paginated.

Response:
  - 200: []User: Page of accounts with pagination metadata
  - 400: ErrValidation: Unknown role
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsersByRole(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	role := requestutil.ID(request, "role")

	users, total, err := handler.accountService.ListUsersByRole(request.Context(), role,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
DELETE /api/v1/users/{id}.

Description: Soft-deletes a user account and revokes its sessions.

Response:
  - 204: No Content: Account deleted
  - 403: ErrForbidden: Caller is not an admin
  - 404: ErrNotFound: Account does not exist
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "id")

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/users/{id}/restore.

Description: Reinstates a soft-deleted account. Sessions revoked at deletion
time stay revoked.

Response:
  - 200: Success: Account restored
  - 403: ErrForbidden: Caller is not an admin
  - 404: ErrNotFound: No deleted account matches
*/
func (handler *Handler) restoreUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "id")

	if err := handler.accountService.RestoreAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"status": "restored"})
}
