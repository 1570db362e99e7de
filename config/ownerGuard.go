package config

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnscopedOwnerWrite is raised when an UPDATE/DELETE against a table with an
// owner_id column carries no owner_id predicate.
var ErrUnscopedOwnerWrite = errors.New("owner guard: write on owned table without owner_id predicate")

// OwnerGuardPlugin rejects writes to owned records (contracts, invoices) that
// are not scoped by owner_id, so every write-back follows the
// "WHERE id = ? AND owner_id = ?" discipline.
//
// NOTE:
// - Reads are not checked; admin reads are intentionally unscoped.
// - Raw SQL is not inspected.
type OwnerGuardPlugin struct{}

func NewOwnerGuardPlugin() *OwnerGuardPlugin { return &OwnerGuardPlugin{} }

func (p *OwnerGuardPlugin) Name() string { return "owner_guard" }

func (p *OwnerGuardPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Update().Before("gorm:update").Register("owner_guard:update", ownerGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("owner_guard:delete", ownerGuardCallback); err != nil {
		return err
	}
	return nil
}

func ownerGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil || db.Statement.Schema == nil {
		return
	}
	hasOwnerID := false
	for _, f := range db.Statement.Schema.Fields {
		if strings.EqualFold(f.DBName, "owner_id") {
			hasOwnerID = true
			break
		}
	}
	if !hasOwnerID {
		return
	}
	if whereHasOwnerID(db.Statement.Clauses["WHERE"]) {
		return
	}
	_ = db.AddError(ErrUnscopedOwnerWrite)
}

func whereHasOwnerID(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasOwnerID(e) {
			return true
		}
	}
	return false
}

func exprHasOwnerID(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsOwnerID(v.Column)
	case clause.IN:
		return colIsOwnerID(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasOwnerID(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "owner_id")
	default:
		return false
	}
}

func colIsOwnerID(col any) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, "owner_id")
	case clause.Column:
		return strings.EqualFold(c.Name, "owner_id")
	default:
		return false
	}
}
