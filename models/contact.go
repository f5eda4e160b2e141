package models

import (
	"context"
	"fmt"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
)

// Contact is internal staff: a consultant, a client manager or other.
type Contact struct {
	ID            int         `gorm:"primary_key" json:"id"`
	Name          string      `gorm:"not null" json:"name"`
	EmailAddress  string      `gorm:"size:255;not null" json:"email_address"`
	MobilePhone   string      `gorm:"size:20;not null" json:"mobile_phone"`
	PositionTitle string      `gorm:"size:50;not null" json:"position_title"`
	ContactType   ContactType `gorm:"size:20;not null" json:"contact_type"`
	Status        string      `gorm:"size:1;not null;default:A" json:"-"`
}

type NewContact struct {
	Name          string `json:"name" binding:"required"`
	EmailAddress  string `json:"email_address" binding:"required"`
	MobilePhone   string `json:"mobile_phone" binding:"required"`
	PositionTitle string `json:"position_title"`
	ContactType   string `json:"contact_type" binding:"required"`
}

func (input *NewContact) validate() error {
	if !IsValidContactType(input.ContactType) {
		return fmt.Errorf("%w: invalid contact_type %q", utils.ErrorInvalidInput, input.ContactType)
	}
	return nil
}

func (input *NewContact) apply(contact *Contact) {
	contact.Name = input.Name
	contact.EmailAddress = input.EmailAddress
	contact.MobilePhone = utils.NormalizePhoneNumber(input.MobilePhone)
	contact.ContactType = ContactType(input.ContactType)
	if input.PositionTitle != "" {
		contact.PositionTitle = input.PositionTitle
	} else {
		contact.PositionTitle = DefaultPositionTitle(contact.ContactType)
	}
}

func CreateContact(ctx context.Context, input *NewContact) (*Contact, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	contact := Contact{Status: "A"}
	input.apply(&contact)
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func GetContact(ctx context.Context, id int) (*Contact, error) {
	db := config.GetDB()

	var contact Contact
	if err := db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func UpdateContact(ctx context.Context, id int, input *NewContact) (*Contact, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var contact Contact
	if err := db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}

	input.apply(&contact)
	if err := db.WithContext(ctx).Save(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func DeleteContact(ctx context.Context, id int) error {
	db := config.GetDB()

	var contact Contact
	if err := db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&contact).Error
}

// ListContacts filters by contact type (an unknown type is ignored rather
// than rejected) and a name search term.
func ListContacts(ctx context.Context, contactType, search string, p Pagination) ([]Contact, int, int, error) {
	db := config.GetDB()
	p = p.Normalize()

	query := db.WithContext(ctx).Model(&Contact{})
	if contactType != "" && IsValidContactType(contactType) {
		query = query.Where("contact_type = ?", contactType)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var contacts []Contact
	if err := query.Order("name DESC").Scopes(Paginate(p)).Find(&contacts).Error; err != nil {
		return nil, 0, 0, err
	}
	if len(contacts) == 0 {
		return nil, 0, 0, utils.ErrorRecordNotFound
	}

	return contacts, p.Page, TotalPages(total, p.PageSize), nil
}
