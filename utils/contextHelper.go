package utils

import (
	"context"

	"bitbucket.org/trellisadvisory/planning_backend/appctx"
)

var (
	ContextKeyEngagementId        = appctx.ContextKeyEngagementId
	ContextKeyCorrelationId       = appctx.ContextKeyCorrelationId
	ContextKeySkipEngagementScope = appctx.ContextKeySkipEngagementScope
)

func GetEngagementIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyEngagementId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func GetSkipEngagementScopeFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, ContextKeySkipEngagementScope)
}

func SetEngagementIdInContext(ctx context.Context, engagementId string) context.Context {
	return appctx.Set(ctx, ContextKeyEngagementId, engagementId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func SetSkipEngagementScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, ContextKeySkipEngagementScope, skip)
}
