package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "session-guard context key " + string(c)
}

// RequestIDKey is the key for the per-request ID set by the requestid middleware
const RequestIDKey = contextKey("requestID")

// SessionKey is the key for the decoded *model.Session in context.Context
const SessionKey = contextKey("session")

// UserIDKey is the key for the session's user ID, stored as a string for logging
const UserIDKey = contextKey("userID")

// ComponentKey is the key for the component name used by the logger
const ComponentKey = contextKey("component")

// OperationKey is the key for the operation name used by the logger
const OperationKey = contextKey("operation")
