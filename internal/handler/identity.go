package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bukubesar/backend/internal/auth"
)

// currentUser pulls the authenticated user id set by the auth middleware.
func currentUser(r *http.Request) (uuid.UUID, *AppError) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrMissingToken
	}
	return userID, nil
}
