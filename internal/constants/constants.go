package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "kanban_session"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

const (
	// DefaultBoardListLimit is how many owned/shared boards the picker returns
	// unless the client asks for more.
	DefaultBoardListLimit = 5

	// MaxBoardListLimit caps the expanded owned-board listing.
	MaxBoardListLimit = 50
)

// MaxSuggestedTasks caps how many tasks a single AI suggestion call may return.
const MaxSuggestedTasks = 20
