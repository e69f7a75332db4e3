package services

import (
	"testing"

	"acting-office/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequiresBusinesses(t *testing.T) {
	_, contacts, _, _ := newServices(t)

	err := contacts.CreateWithHistory(&models.Contact{Name: "John"}, "a@x.com")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateContactFirstBusinessMustExist(t *testing.T) {
	_, contacts, _, _ := newServices(t)

	contact := &models.Contact{
		Name:       "John",
		Businesses: []models.BusinessRef{{BusinessID: "no-such-id", Name: "Ghost"}},
	}
	err := contacts.CreateWithHistory(contact, "a@x.com")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateContactCopiesClientIDAndLogsPerBusiness(t *testing.T) {
	businesses, contacts, history, _ := newServices(t)

	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")
	b2 := mustCreateBusiness(t, businesses, "Beta", "a@x.com")

	contact := &models.Contact{
		Name: "John",
		Businesses: []models.BusinessRef{
			{BusinessID: b1.ID, Name: b1.BusinessName},
			{BusinessID: b2.ID, Name: b2.BusinessName},
		},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))

	assert.Equal(t, b1.ClientID, contact.ClientID)
	assert.NotEmpty(t, contact.ID)

	entries, err := history.ByBusiness(b1.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2) // created + contact linked
	assert.Contains(t, entries[0].Message, "Contact 'John'")
	assert.Contains(t, entries[0].Message, "'Alpha'")

	entries, err = history.ByBusiness(b2.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "'Beta'")
}

func TestCreateContactValidatesOnlyFirstBusiness(t *testing.T) {
	businesses, contacts, _, _ := newServices(t)
	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")

	// второй бизнес не существует — это сознательно не проверяется
	contact := &models.Contact{
		Name: "John",
		Businesses: []models.BusinessRef{
			{BusinessID: b1.ID, Name: b1.BusinessName},
			{BusinessID: "no-such-id", Name: "Ghost"},
		},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))

	got, err := contacts.ByID(contact.ID)
	require.NoError(t, err)
	assert.Len(t, got.Businesses, 2)
}

func TestLinkBusinessesSuppressesDuplicates(t *testing.T) {
	businesses, contacts, _, _ := newServices(t)

	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")
	b2 := mustCreateBusiness(t, businesses, "Beta", "a@x.com")

	contact := &models.Contact{
		Name:       "John",
		Businesses: []models.BusinessRef{{BusinessID: b1.ID, Name: b1.BusinessName}},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))

	// уже привязанный — added 0, набор не меняется
	added, err := contacts.LinkBusinesses(contact.ID, []models.BusinessRef{
		{BusinessID: b1.ID, Name: b1.BusinessName},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	got, err := contacts.ByID(contact.ID)
	require.NoError(t, err)
	assert.Len(t, got.Businesses, 1)

	// смесь старого и нового — добавляется только новый
	added, err = contacts.LinkBusinesses(contact.ID, []models.BusinessRef{
		{BusinessID: b1.ID, Name: b1.BusinessName},
		{BusinessID: b2.ID, Name: b2.BusinessName},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	got, err = contacts.ByID(contact.ID)
	require.NoError(t, err)
	assert.Len(t, got.Businesses, 2)
}

func TestLinkBusinessesDedupsWithinRequest(t *testing.T) {
	businesses, contacts, _, _ := newServices(t)

	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")
	b2 := mustCreateBusiness(t, businesses, "Beta", "a@x.com")

	contact := &models.Contact{
		Name:       "John",
		Businesses: []models.BusinessRef{{BusinessID: b1.ID, Name: b1.BusinessName}},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))

	added, err := contacts.LinkBusinesses(contact.ID, []models.BusinessRef{
		{BusinessID: b2.ID, Name: b2.BusinessName},
		{BusinessID: b2.ID, Name: b2.BusinessName},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestLinkBusinessesWritesNoAudit(t *testing.T) {
	businesses, contacts, _, db := newServices(t)

	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")
	b2 := mustCreateBusiness(t, businesses, "Beta", "a@x.com")

	contact := &models.Contact{
		Name:       "John",
		Businesses: []models.BusinessRef{{BusinessID: b1.ID, Name: b1.BusinessName}},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))
	before := historyCount(t, db, "")

	_, err := contacts.LinkBusinesses(contact.ID, []models.BusinessRef{
		{BusinessID: b2.ID, Name: b2.BusinessName},
	})
	require.NoError(t, err)
	assert.Equal(t, before, historyCount(t, db, ""))
}

func TestLinkBusinessesContactNotFound(t *testing.T) {
	_, contacts, _, _ := newServices(t)

	_, err := contacts.LinkBusinesses("no-such-id", []models.BusinessRef{
		{BusinessID: "b", Name: "B"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactsByBusiness(t *testing.T) {
	businesses, contacts, _, _ := newServices(t)

	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")
	b2 := mustCreateBusiness(t, businesses, "Beta", "a@x.com")

	c1 := &models.Contact{Name: "John", Businesses: []models.BusinessRef{{BusinessID: b1.ID, Name: "Alpha"}}}
	require.NoError(t, contacts.CreateWithHistory(c1, "a@x.com"))
	c2 := &models.Contact{Name: "Jane", Businesses: []models.BusinessRef{{BusinessID: b2.ID, Name: "Beta"}}}
	require.NoError(t, contacts.CreateWithHistory(c2, "a@x.com"))

	got, err := contacts.ByBusiness(b1.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].Name)
}

func TestUpdateDetailsTouchesOnlyContactFields(t *testing.T) {
	businesses, contacts, _, _ := newServices(t)
	b1 := mustCreateBusiness(t, businesses, "Alpha", "a@x.com")

	contact := &models.Contact{
		Name:       "John",
		Email:      "john@old.example",
		Businesses: []models.BusinessRef{{BusinessID: b1.ID, Name: "Alpha"}},
	}
	require.NoError(t, contacts.CreateWithHistory(contact, "a@x.com"))

	err := contacts.UpdateDetails(models.Contact{
		ID:    contact.ID,
		Email: "john@new.example",
		Phone: "123",
	})
	require.NoError(t, err)

	got, err := contacts.ByID(contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@new.example", got.Email)
	assert.Equal(t, "John", got.Name)                  // имя не трогаем
	assert.Equal(t, b1.ClientID, got.ClientID)         // clientId не трогаем
	assert.Len(t, got.Businesses, 1)                   // привязки не трогаем

	assert.ErrorIs(t, contacts.UpdateDetails(models.Contact{ID: "no-such-id"}), ErrNotFound)
}
