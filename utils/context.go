package utils

import (
	"net/http"

	"graintrade/globals"
)

// GetUserIDFromRequest returns the authenticated user id stored in the
// request context by the auth middleware, or "" when absent.
func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}
