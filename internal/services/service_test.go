package services

import (
	"testing"

	"acting-office/internal/database"
	"acting-office/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// одна in-memory база на соединение, пул должен быть из одного
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newServices(t *testing.T) (*BusinessService, *ContactService, *HistoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	history := NewHistoryService(db)
	return NewBusinessService(db, history), NewContactService(db, history), history, db
}

func mustCreateBusiness(t *testing.T, svc *BusinessService, name, createdBy string) *models.Business {
	t.Helper()
	b := &models.Business{
		BusinessName: name,
		Type:         "Limited",
		CreatedBy:    createdBy,
	}
	require.NoError(t, svc.Create(b))
	return b
}

func activeSnos(t *testing.T, db *gorm.DB) []int {
	t.Helper()
	var snos []int
	err := db.Model(&models.Business{}).
		Where("status = ?", models.StatusActive).
		Order("sno asc").
		Pluck("sno", &snos).Error
	require.NoError(t, err)
	return snos
}

func historyCount(t *testing.T, db *gorm.DB, businessID string) int64 {
	t.Helper()
	var n int64
	q := db.Model(&models.History{})
	if businessID != "" {
		q = q.Where("business_id = ?", businessID)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
