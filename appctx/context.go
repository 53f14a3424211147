package appctx

import "context"

// ContextKey is the shared type for all context keys in this codebase.
// Keeping it in a tiny package avoids import cycles (config <-> utils).
type ContextKey string

func (c ContextKey) String() string { return string(c) }

var (
	ContextKeyEngagementId  = ContextKey("EngagementId")
	ContextKeyCorrelationId = ContextKey("CorrelationId")

	// ContextKeySkipEngagementScope disables engagement scoping for the request.
	// Use sparingly (cross-engagement reads like the coach engagement list).
	ContextKeySkipEngagementScope = ContextKey("SkipEngagementScope")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func GetBool(ctx context.Context, key ContextKey) (bool, bool) {
	v, ok := ctx.Value(key).(bool)
	return v, ok
}

func Set(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}
