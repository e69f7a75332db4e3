package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"acting-office/internal/models"

	"gorm.io/gorm"
)

// BusinessService владеет жизненным циклом бизнес-записи: создание,
// обновление с журналированием, мягкое удаление/восстановление и
// пересчёт порядковых номеров.
type BusinessService struct {
	db      *gorm.DB
	history *HistoryService

	// сериализует выдачу sno/client_id и пересчёт — чтение максимума
	// и запись не атомарны на уровне БД
	mu sync.Mutex
}

func NewBusinessService(db *gorm.DB, history *HistoryService) *BusinessService {
	return &BusinessService{db: db, history: history}
}

// auditLog — best-effort запись в журнал: падение только логируем
func (s *BusinessService) auditLog(businessID, message, performedBy string) {
	if err := s.history.Log(businessID, message, performedBy); err != nil {
		log.Printf("audit write failed for business %s: %v", businessID, err)
	}
}

// nextSno — 1 + максимальный sno среди активных записей
func (s *BusinessService) nextSno() (int, error) {
	var last models.Business
	err := s.db.
		Where("status = ?", models.StatusActive).
		Order("sno desc").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Sno + 1, nil
}

// nextClientID сканирует все CID-<n> и берёт max(n)+1.
// Линейно, но записей организационно немного.
func (s *BusinessService) nextClientID() (string, error) {
	var ids []string
	err := s.db.Model(&models.Business{}).
		Where("client_id LIKE ?", "CID-%").
		Pluck("client_id", &ids).Error
	if err != nil {
		return "", err
	}

	max := 0
	for _, id := range ids {
		numPart := strings.TrimPrefix(id, "CID-")
		if n, err := strconv.Atoi(numPart); err == nil && n > max {
			max = n
		}
	}

	return fmt.Sprintf("CID-%d", max+1), nil
}

func (s *BusinessService) Create(b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Status == "" {
		b.Status = models.StatusActive
	}

	sno, err := s.nextSno()
	if err != nil {
		return err
	}
	b.Sno = sno

	if strings.TrimSpace(b.ClientID) == "" {
		cid, err := s.nextClientID()
		if err != nil {
			return err
		}
		b.ClientID = cid
	}

	if err := s.db.Create(b).Error; err != nil {
		return err
	}

	s.auditLog(b.ID, fmt.Sprintf("Client/Business '%s' created.", b.BusinessName), b.CreatedBy)
	return nil
}

// Update заменяет запись целиком. ClientID, Sno и CreatedAt всегда
// берутся из оригинала. Возвращает список строк изменений (пустой —
// обновлять нечего, это успешный no-op).
func (s *BusinessService) Update(id string, updated models.Business, performedBy string) ([]string, error) {
	var original models.Business
	if err := s.db.First(&original, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated.ID = original.ID
	updated.ClientID = original.ClientID
	updated.Sno = original.Sno
	updated.CreatedAt = original.CreatedAt
	if updated.CreatedBy == "" {
		updated.CreatedBy = original.CreatedBy
	}
	if updated.Status == "" {
		// пустой статус — не "снять статус", а "не менять"
		updated.Status = original.Status
	}

	var messages []string
	logChange := func(label, oldVal, newVal string) {
		bothBlank := strings.TrimSpace(oldVal) == "" && strings.TrimSpace(newVal) == ""
		if oldVal != newVal && !bothBlank {
			messages = append(messages,
				fmt.Sprintf("%s changed from '%s' to '%s' by %s", label, oldVal, newVal, performedBy))
		}
	}

	logChange("Business Name", original.BusinessName, updated.BusinessName)
	logChange("Type", original.Type, updated.Type)
	logChange("Contact Person", original.ContactPerson, updated.ContactPerson)
	logChange("Team", original.Team, updated.Team)
	logChange("Manager", original.Manager, updated.Manager)
	logChange("First Response", original.FirstResponse, updated.FirstResponse)
	logChange("Email", original.Email, updated.Email)
	logChange("Phone Number", original.PhoneNumber, updated.PhoneNumber)
	logChange("Status", string(original.Status), string(updated.Status))

	if len(messages) == 0 {
		return nil, nil
	}

	if err := s.db.Save(&updated).Error; err != nil {
		return nil, err
	}

	for _, msg := range messages {
		s.auditLog(id, msg, performedBy)
	}
	return messages, nil
}

func (s *BusinessService) SoftDelete(id, performedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b models.Business
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.Status == models.StatusInactive {
		return ErrInvalidTransition
	}

	err := s.db.Model(&b).Update("status", models.StatusInactive).Error
	if err != nil {
		return err
	}

	s.auditLog(b.ID, fmt.Sprintf("Client/Business '%s' marked as inactive.", b.BusinessName), performedBy)
	return s.resequence()
}

func (s *BusinessService) Restore(id, performedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b models.Business
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.Status == models.StatusActive {
		return ErrInvalidTransition
	}

	err := s.db.Model(&b).Update("status", models.StatusActive).Error
	if err != nil {
		return err
	}

	s.auditLog(b.ID, fmt.Sprintf("Client/Business '%s' restored.", b.BusinessName), performedBy)
	return s.resequence()
}

// ToggleStatus переключает статус без записи в журнал (поведение
// исходной системы сохранено сознательно, см. DESIGN.md)
func (s *BusinessService) ToggleStatus(id string) (models.BusinessStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b models.Business
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	newStatus := models.StatusInactive
	if b.Status == models.StatusInactive {
		newStatus = models.StatusActive
	}

	if err := s.db.Model(&b).Update("status", newStatus).Error; err != nil {
		return "", err
	}

	if err := s.resequence(); err != nil {
		return "", err
	}
	return newStatus, nil
}

// Resequence приводит sno активных записей к плотному 1..N
func (s *BusinessService) Resequence() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resequence()
}

// идемпотентный проход: трогаем только записи с неверным sno,
// позиции правятся от первой к последней — обрыв посередине
// оставляет строго упорядоченное состояние
func (s *BusinessService) resequence() error {
	var active []models.Business
	err := s.db.
		Where("status = ?", models.StatusActive).
		Order("sno asc").
		Find(&active).Error
	if err != nil {
		return err
	}

	for i := range active {
		expected := i + 1
		if active[i].Sno != expected {
			err := s.db.Model(&models.Business{}).
				Where("id = ?", active[i].ID).
				Update("sno", expected).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// GetFiltered — постраничная выборка. status="all" отключает фильтр
// по статусу, невалидный статус — ошибка валидации. Не-админ видит
// только свои записи, этот фильтр не обходится никакой комбинацией
// параметров.
func (s *BusinessService) GetFiltered(status, role, identity, businessType string, page, pageSize int) ([]models.Business, int64, error) {
	q := s.db.Model(&models.Business{})

	if !strings.EqualFold(status, "all") {
		parsed, err := models.ParseBusinessStatus(status)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		q = q.Where("status = ?", parsed)
	}

	if businessType != "" {
		q = q.Where("type = ?", businessType)
	}

	if role != "Admin" {
		q = q.Where("created_by = ?", identity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Business
	err := q.
		Order("sno asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *BusinessService) ByID(id string) (*models.Business, error) {
	var b models.Business
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BusinessService) ByIDs(ids []string) ([]models.Business, error) {
	var items []models.Business
	if len(ids) == 0 {
		return items, nil
	}
	err := s.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

// ByClientIDAll — все бизнесы клиента, включая неактивные
func (s *BusinessService) ByClientIDAll(clientID string) ([]models.Business, error) {
	var items []models.Business
	err := s.db.Where("client_id = ?", clientID).Find(&items).Error
	return items, err
}

// ByClientID — бизнесы клиента, неактивные скрыты
func (s *BusinessService) ByClientID(clientID string) ([]models.Business, error) {
	var items []models.Business
	err := s.db.
		Where("client_id = ? AND status <> ?", clientID, models.StatusInactive).
		Find(&items).Error
	return items, err
}

// ByContactID — бизнесы, ссылающиеся на контакт, неактивные скрыты
func (s *BusinessService) ByContactID(contactID string) ([]models.Business, error) {
	var items []models.Business
	err := s.db.
		Where("linked_contact_id = ? AND status <> ?", contactID, models.StatusInactive).
		Find(&items).Error
	return items, err
}
