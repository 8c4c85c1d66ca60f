package model

// AuthContext carries the identity resolved by the auth middleware.
// It is attached to the request context and read by handlers; the user ID
// comes from a verified token, not from the client payload.
type AuthContext struct {
	UserID string
}
