package services

import (
	"strings"

	"acting-office/internal/models"

	"gorm.io/gorm"
)

// HistoryService — журнал аудита. Запись best-effort: падение записи
// логируется вызывающим, но никогда не валит основную мутацию.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Log добавляет запись в журнал. Пустой businessID или message —
// тихий no-op, это контракт, а не ошибка.
func (s *HistoryService) Log(businessID, message, performedBy string) error {
	if strings.TrimSpace(businessID) == "" || strings.TrimSpace(message) == "" {
		return nil
	}
	if strings.TrimSpace(performedBy) == "" {
		performedBy = "System"
	}

	entry := models.History{
		BusinessID:  businessID,
		Message:     message,
		PerformedBy: performedBy,
	}
	return s.db.Create(&entry).Error
}

// ByBusiness возвращает журнал бизнеса, свежие записи первыми
func (s *HistoryService) ByBusiness(businessID string) ([]models.History, error) {
	if strings.TrimSpace(businessID) == "" {
		return []models.History{}, nil
	}

	var entries []models.History
	err := s.db.
		Where("business_id = ?", businessID).
		Order("timestamp desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
