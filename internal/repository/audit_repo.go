package repository

import (
	"strings"

	"go-inventory-pos/internal/model"

	"gorm.io/gorm"
)

// AuditListOptions are the query-string filters of GET /audit-logs.
type AuditListOptions struct {
	Page   int
	Limit  int
	Action string
	UserID string
	Search string
}

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	List(opts AuditListOptions) ([]model.AuditLog, int64, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db}
}

func (r *auditLogRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepo) List(opts AuditListOptions) ([]model.AuditLog, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}

	query := r.db.Model(&model.AuditLog{})

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
			Where(`LOWER(audit_logs.details) LIKE ?
				OR LOWER(audit_logs.entity_id) LIKE ?
				OR LOWER(audit_logs.action) LIKE ?
				OR LOWER(users.name) LIKE ?`,
				pattern, pattern, pattern, pattern)
	}
	if opts.Action != "" {
		query = query.Where("audit_logs.action = ?", opts.Action)
	}
	if opts.UserID != "" {
		query = query.Where("audit_logs.user_id = ?", opts.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	err := query.
		Preload("User").
		Order("audit_logs.created_at DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&logs).Error
	return logs, total, err
}
