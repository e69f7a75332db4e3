package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"acting-office/internal/models"

	"gorm.io/gorm"
)

// ContactService — контакты и их привязки к бизнесам
type ContactService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewContactService(db *gorm.DB, history *HistoryService) *ContactService {
	return &ContactService{db: db, history: history}
}

// CreateWithHistory создаёт контакт и пишет по записи журнала на каждый
// привязанный бизнес. ClientID берётся из первого бизнеса; существование
// проверяется только у первого — остальные сознательно не валидируются.
func (s *ContactService) CreateWithHistory(contact *models.Contact, performedBy string) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrValidation)
	}
	if len(contact.Businesses) == 0 {
		return fmt.Errorf("%w: at least one business must be linked", ErrValidation)
	}

	firstID := strings.TrimSpace(contact.Businesses[0].BusinessID)
	if firstID == "" {
		return fmt.Errorf("%w: first business id is empty", ErrValidation)
	}

	var first models.Business
	if err := s.db.First(&first, "id = ?", firstID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: first linked business not found", ErrValidation)
		}
		return err
	}

	contact.ClientID = first.ClientID

	if err := s.db.Create(contact).Error; err != nil {
		return err
	}

	for _, ref := range contact.Businesses {
		msg := fmt.Sprintf("Contact '%s' created and linked to business '%s'.", contact.Name, ref.Name)
		if err := s.history.Log(ref.BusinessID, msg, performedBy); err != nil {
			log.Printf("audit write failed for business %s: %v", ref.BusinessID, err)
		}
	}
	return nil
}

// LinkBusinesses добавляет бизнесы к контакту, пропуская уже привязанные.
// Возвращает количество реально добавленных; 0 — валидный результат
// "всё уже привязано". Журнал при линковке не пишется.
func (s *ContactService) LinkBusinesses(contactID string, businesses []models.BusinessRef) (int, error) {
	contact, err := s.ByID(contactID)
	if err != nil {
		return 0, err
	}

	linked := make(map[string]struct{}, len(contact.Businesses))
	for _, ref := range contact.Businesses {
		linked[ref.BusinessID] = struct{}{}
	}

	var toAdd []models.BusinessRef
	for _, ref := range businesses {
		if _, ok := linked[ref.BusinessID]; ok {
			continue
		}
		linked[ref.BusinessID] = struct{}{} // дубликаты внутри запроса тоже схлопываем
		toAdd = append(toAdd, models.BusinessRef{
			ContactID:  contact.ID,
			BusinessID: ref.BusinessID,
			Name:       ref.Name,
		})
	}

	if len(toAdd) == 0 {
		return 0, nil
	}

	if err := s.db.Create(&toAdd).Error; err != nil {
		return 0, err
	}
	return len(toAdd), nil
}

func (s *ContactService) ByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Preload("Businesses").First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// ByBusiness — контакты, среди привязок которых есть данный бизнес
func (s *ContactService) ByBusiness(businessID string) ([]models.Contact, error) {
	var ids []string
	err := s.db.Model(&models.BusinessRef{}).
		Where("business_id = ?", businessID).
		Distinct().
		Pluck("contact_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Contact{}, nil
	}

	var contacts []models.Contact
	err = s.db.Preload("Businesses").Where("id IN ?", ids).Find(&contacts).Error
	return contacts, err
}

func (s *ContactService) All() ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.Preload("Businesses").Find(&contacts).Error
	return contacts, err
}

// UpdateDetails обновляет только контактные поля; привязки и clientId
// через этот метод не меняются
func (s *ContactService) UpdateDetails(updated models.Contact) error {
	if _, err := s.ByID(updated.ID); err != nil {
		return err
	}

	return s.db.Model(&models.Contact{ID: updated.ID}).
		Updates(map[string]interface{}{
			"email":       updated.Email,
			"phone":       updated.Phone,
			"designation": updated.Designation,
			"type":        updated.Type,
			"story":       updated.Story,
		}).Error
}
