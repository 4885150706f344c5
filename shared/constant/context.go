// Package constant holds names shared across layers: context keys, request
// parameters, headers, column names and tracing scopes.
package constant

// ContextGuest is the role of requests that carry no session.
const ContextGuest = "guest"

const RoleAdmin = "admin"

type contextKey string

// Keys under which the auth middleware stores the principal.
const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)
