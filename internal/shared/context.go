package shared

import "context"

type subjectContextKey struct{}

// ContextWithSubject stores the authenticated subject identifier in context.
func ContextWithSubject(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, subjectContextKey{}, userID)
}

// SubjectFromContext extracts the authenticated subject identifier.
func SubjectFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(subjectContextKey{}).(int64)
	return id, ok
}
