package service

import (
	"errors"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrWrongPassword = errors.New("invalid password")

type AdminService interface {
	// ClearAllData wipes transactions, products, categories and audit logs
	// in one database transaction after re-verifying the caller's password,
	// then writes one fresh audit row recording the wipe.
	ClearAllData(userID uuid.UUID, password string) error
}

type adminService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	audit    AuditLogger
}

func NewAdminService(db *gorm.DB, userRepo repository.UserRepository, audit AuditLogger) AdminService {
	return &adminService{
		db:       db,
		userRepo: userRepo,
		audit:    audit,
	}
}

func (s *adminService) ClearAllData(userID uuid.UUID, password string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(password) {
		return ErrWrongPassword
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Dependent rows first.
		if err := tx.Where("1 = 1").Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.AuditLog{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Get().Warn("all inventory data cleared", zap.String("user_id", userID.String()))

	// First entry of the fresh log.
	s.audit.LogAction(userID, "DELETE", "SYSTEM", "ALL", map[string]interface{}{
		"message": "All data cleared by admin",
	})
	return nil
}
