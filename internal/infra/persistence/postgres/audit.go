package postgres

import (
	"time"

	"identity/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	auditPluginName      = "identity:audit"
	softDeleteField      = "IsDeleted"
	softDeleteColumn     = "is_deleted"
	softDeleteClauseFlag = "identity:soft_delete_filter"
)

// AuditPlugin stamps audit columns on every write and hides soft-deleted rows from every read.
// It applies to any model whose schema carries the BaseModel fields.
type AuditPlugin struct {
	now func() time.Time
}

// NewAuditPlugin creates the plugin with the wall clock in UTC.
func NewAuditPlugin() *AuditPlugin {
	return &AuditPlugin{now: func() time.Time { return time.Now().UTC() }}
}

// NewAuditPluginWithClock creates the plugin with a custom clock.
func NewAuditPluginWithClock(now func() time.Time) *AuditPlugin {
	return &AuditPlugin{now: now}
}

// Name implements gorm.Plugin.
func (p *AuditPlugin) Name() string {
	return auditPluginName
}

// Initialize implements gorm.Plugin by registering the audit callbacks.
func (p *AuditPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register(auditPluginName+":before_create", p.beforeCreate); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register(auditPluginName+":before_update", p.beforeUpdate); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register(auditPluginName+":soft_delete_query", p.filterDeleted); err != nil {
		return err
	}

	return cb.Row().Before("gorm:row").Register(auditPluginName+":soft_delete_row", p.filterDeleted)
}

func (p *AuditPlugin) beforeCreate(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	actor := entity.ActorFromContext(db.Statement.Context).String()
	now := p.now()

	setIfPresent(db, "CreatedAt", now)
	setIfPresent(db, "CreatedBy", actor)
	setIfPresent(db, softDeleteField, false)
}

func (p *AuditPlugin) beforeUpdate(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	actor := entity.ActorFromContext(db.Statement.Context).String()
	now := p.now()

	setIfPresent(db, "ModifiedAt", now)
	setIfPresent(db, "ModifiedBy", actor)
}

// filterDeleted adds "<table>".is_deleted = false to queries against soft-deletable models.
func (p *AuditPlugin) filterDeleted(db *gorm.DB) {
	stmt := db.Statement
	if db.Error != nil || stmt.Schema == nil || stmt.Unscoped {
		return
	}
	if stmt.Schema.LookUpField(softDeleteField) == nil {
		return
	}
	if _, ok := stmt.Clauses[softDeleteClauseFlag]; ok {
		return
	}

	stmt.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: softDeleteColumn}, Value: false},
	}})
	stmt.Clauses[softDeleteClauseFlag] = clause.Clause{}
}

func setIfPresent(db *gorm.DB, field string, value any) {
	if db.Statement.Schema.LookUpField(field) == nil {
		return
	}

	db.Statement.SetColumn(field, value, true)
}
