package contextkeys

// ContextKey is the typed key used for values stored in request contexts.
type ContextKey string

const (
	UserIDContextKey ContextKey = "userID"
	RoleContextKey   ContextKey = "role"
)
