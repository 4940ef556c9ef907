package postgres

import (
	"context"
	"fmt"

	"phonebook/contact"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

// ContactModel represents the database model for contacts
type ContactModel struct {
	ID       uint         `gorm:"primaryKey"`
	Position int          `gorm:"not null"`
	Name     string       `gorm:"not null"`
	Phones   []PhoneModel `gorm:"foreignKey:ContactID"`
}

// TableName specifies the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// PhoneModel represents the database model for phone numbers
type PhoneModel struct {
	ID        uint   `gorm:"primaryKey"`
	ContactID uint   `gorm:"not null"`
	Position  int    `gorm:"not null"`
	Number    string `gorm:"not null"`
	Kind      string `gorm:"not null"`
}

func (PhoneModel) TableName() string {
	return "phone_numbers"
}

// BookRepository implements contact.Repository. The whole book is replaced in
// one transaction on every save.
type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// EnsureInitialised applies pending migrations; an empty schema is an empty book.
func (r *BookRepository) EnsureInitialised(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	if _, err := Migrate(sqlDB, migrate.Up); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (r *BookRepository) LoadContacts(ctx context.Context) ([]*contact.Contact, error) {
	var models []ContactModel
	err := r.db.WithContext(ctx).
		Preload("Phones", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("position").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]*contact.Contact, len(models))
	for i, model := range models {
		phones := make([]*contact.PhoneNumber, len(model.Phones))
		for j, p := range model.Phones {
			phones[j] = contact.NewPhoneNumber(p.Number, contact.Type(p.Kind))
		}
		contacts[i] = contact.New(model.Name, phones...)
	}
	return contacts, nil
}

func (r *BookRepository) SaveContacts(ctx context.Context, contacts []*contact.Contact) error {
	models := make([]ContactModel, 0, len(contacts))
	for _, c := range contacts {
		if c == nil {
			continue
		}
		model := ContactModel{Position: len(models), Name: c.Name}
		for j, p := range c.Phones {
			model.Phones = append(model.Phones, PhoneModel{
				Position: j,
				Number:   p.Number(),
				Kind:     string(p.Type()),
			})
		}
		models = append(models, model)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM phone_numbers").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM contacts").Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
}
