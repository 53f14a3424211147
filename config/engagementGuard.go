package config

import (
	"context"
	"strings"

	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementGuardPlugin enforces per-engagement isolation by automatically
// scoping queries/updates/deletes to the request's engagement_id when the
// model has an engagement_id column.
//
// NOTE:
// - This does NOT apply to Raw SQL queries. Those must include engagement_id manually.
// - Cross-engagement reads (the coach engagement list) bypass via context flag.
type EngagementGuardPlugin struct{}

func NewEngagementGuardPlugin() *EngagementGuardPlugin { return &EngagementGuardPlugin{} }

func (p *EngagementGuardPlugin) Name() string { return "engagement_guard" }

func (p *EngagementGuardPlugin) Initialize(db *gorm.DB) error {
	// Query
	if err := db.Callback().Query().Before("gorm:query").Register("engagement_guard:query", engagementGuardCallback); err != nil {
		return err
	}
	// Row (First/Take)
	if err := db.Callback().Row().Before("gorm:row").Register("engagement_guard:row", engagementGuardCallback); err != nil {
		return err
	}
	// Update
	if err := db.Callback().Update().Before("gorm:update").Register("engagement_guard:update", engagementGuardCallback); err != nil {
		return err
	}
	// Delete
	if err := db.Callback().Delete().Before("gorm:delete").Register("engagement_guard:delete", engagementGuardCallback); err != nil {
		return err
	}
	return nil
}

func engagementGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	if shouldBypassEngagementScope(ctx) {
		return
	}
	engagementID := engagementIdFromContext(ctx)
	if engagementID == "" {
		return
	}

	// Only apply if the current model/table includes an engagement_id column.
	if db.Statement.Schema == nil {
		return
	}
	hasEngagementID := false
	for _, f := range db.Statement.Schema.Fields {
		if strings.EqualFold(f.DBName, "engagement_id") {
			hasEngagementID = true
			break
		}
	}
	if !hasEngagementID {
		return
	}

	// Don't duplicate an explicit engagement filter.
	if whereHasEngagementID(db.Statement.Clauses["WHERE"]) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "engagement_id"},
				Value:  engagementID,
			},
		},
	})
}

func engagementIdFromContext(ctx context.Context) string {
	v, _ := utils.GetEngagementIdFromContext(ctx)
	return v
}

func shouldBypassEngagementScope(ctx context.Context) bool {
	skip, ok := utils.GetSkipEngagementScopeFromContext(ctx)
	return ok && skip
}

func whereHasEngagementID(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasEngagementID(e) {
			return true
		}
	}
	return false
}

func exprHasEngagementID(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsEngagementID(v.Column)
	case clause.Neq:
		return colIsEngagementID(v.Column)
	case clause.IN:
		return colIsEngagementID(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasEngagementID(x) {
				return true
			}
		}
		return false
	case clause.OrConditions:
		for _, x := range v.Exprs {
			if exprHasEngagementID(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "engagement_id")
	default:
		return false
	}
}

func colIsEngagementID(col interface{}) bool {
	switch c := col.(type) {
	case clause.Column:
		return strings.EqualFold(c.Name, "engagement_id")
	case string:
		return strings.Contains(strings.ToLower(c), "engagement_id")
	default:
		return false
	}
}
