package service

import (
	"encoding/json"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogger is the best-effort side channel recording who did what.
// It never blocks or fails the operation it accompanies: a missing user is
// a warned no-op, and persistence failures are swallowed after a warning.
type AuditLogger interface {
	LogAction(userID uuid.UUID, action, entity, entityID string, details map[string]interface{})
}

type auditService struct {
	repo repository.AuditLogRepository
}

func NewAuditService(repo repository.AuditLogRepository) AuditLogger {
	return &auditService{repo: repo}
}

func (s *auditService) LogAction(userID uuid.UUID, action, entity, entityID string, details map[string]interface{}) {
	if userID == uuid.Nil {
		logger.Get().Warn("audit log attempted without user",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.String("entity_id", entityID))
		return
	}

	entry := &model.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			logger.Get().Warn("failed to serialize audit details", zap.Error(err))
		} else {
			entry.Details = string(payload)
		}
	}

	if err := s.repo.Create(entry); err != nil {
		logger.Get().Warn("failed to create audit log",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err))
	}
}
