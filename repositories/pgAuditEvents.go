package repositories

import (
	"cat-server/db"
	"cat-server/entities"
)

type auditEventPgRepository struct {
	db db.Database
}

func NewAuditEventPgRepository(database db.Database) AuditEventRepository {
	return &auditEventPgRepository{db: database}
}

func (r *auditEventPgRepository) BulkInsert(events []entities.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.GetDB().Create(&events).Error
}

func (r *auditEventPgRepository) GetRecent(limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var events []entities.AuditEvent
	err := r.db.GetDB().Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
