package models

import (
	"context"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
)

type Client struct {
	ID           int    `gorm:"primary_key" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	BusRegNbr    string `gorm:"size:20;not null" json:"bus_reg_nbr"`
	Abbreviation string `gorm:"size:10;not null" json:"abbreviation"`
}

type NewClient struct {
	Name         string `json:"name" binding:"required"`
	BusRegNbr    string `json:"bus_reg_nbr" binding:"required"`
	Abbreviation string `json:"abbreviation" binding:"required"`
}

type ClientContact struct {
	ID            int     `gorm:"primary_key" json:"id"`
	ClientId      int     `gorm:"index;not null" json:"client_id"`
	Name          string  `gorm:"not null" json:"name"`
	EmailAddress  *string `gorm:"size:255;default:null" json:"email_address"`
	Phone         *string `gorm:"size:20;default:null" json:"phone"`
	PositionTitle *string `gorm:"size:50;default:null" json:"position_title"`
	Address1      *string `gorm:"size:100;default:null" json:"address_1"`
	Address2      *string `gorm:"size:100;default:null" json:"address_2"`
	Address3      *string `gorm:"size:100;default:null" json:"address_3"`
	City          *string `gorm:"size:50;default:null" json:"city"`
	State         *string `gorm:"size:50;default:null" json:"state"`
	PostCode      *string `gorm:"size:10;default:null" json:"post_code"`
}

type NewClientContact struct {
	Name          string  `json:"name" binding:"required"`
	EmailAddress  *string `json:"email_address"`
	Phone         *string `json:"phone"`
	PositionTitle *string `json:"position_title"`
	Address1      *string `json:"address_1"`
	Address2      *string `json:"address_2"`
	Address3      *string `json:"address_3"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostCode      *string `json:"post_code"`
}

func (input *NewClient) apply(client *Client) {
	client.Name = input.Name
	client.BusRegNbr = input.BusRegNbr
	client.Abbreviation = input.Abbreviation
}

func (input *NewClientContact) apply(contact *ClientContact) {
	contact.Name = input.Name
	contact.EmailAddress = input.EmailAddress
	contact.Phone = input.Phone
	contact.PositionTitle = input.PositionTitle
	contact.Address1 = input.Address1
	contact.Address2 = input.Address2
	contact.Address3 = input.Address3
	contact.City = input.City
	contact.State = input.State
	contact.PostCode = input.PostCode
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	db := config.GetDB()

	var client Client
	input.apply(&client)
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func UpdateClient(ctx context.Context, id int, input *NewClient) (*Client, error) {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}

	input.apply(&client)
	if err := db.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func DeleteClient(ctx context.Context, id int) error {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&client).Error
}

// ListClients returns one page of clients plus the total page count. An empty
// or out-of-range page is a not-found condition, the contract shared by every
// list endpoint.
func ListClients(ctx context.Context, search string, p Pagination) ([]Client, int, int, error) {
	db := config.GetDB()
	p = p.Normalize()

	query := db.WithContext(ctx).Model(&Client{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var clients []Client
	if err := query.Order("name DESC").Scopes(Paginate(p)).Find(&clients).Error; err != nil {
		return nil, 0, 0, err
	}
	if len(clients) == 0 {
		return nil, 0, 0, utils.ErrorRecordNotFound
	}

	return clients, p.Page, TotalPages(total, p.PageSize), nil
}

func CreateClientContact(ctx context.Context, clientID int, input *NewClientContact) (*ClientContact, error) {
	// the contact row carries a hard FK; fail fast with a clean 404 instead
	if err := utils.ValidateResourceId[Client](ctx, clientID); err != nil {
		return nil, err
	}

	db := config.GetDB()
	contact := ClientContact{ClientId: clientID}
	input.apply(&contact)
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func GetClientContact(ctx context.Context, clientID, contactID int) (*ClientContact, error) {
	db := config.GetDB()

	var contact ClientContact
	err := db.WithContext(ctx).
		Where("client_id = ? AND id = ?", clientID, contactID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func UpdateClientContact(ctx context.Context, clientID, contactID int, input *NewClientContact) (*ClientContact, error) {
	db := config.GetDB()

	contact, err := GetClientContact(ctx, clientID, contactID)
	if err != nil {
		return nil, err
	}

	input.apply(contact)
	if err := db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func DeleteClientContact(ctx context.Context, clientID, contactID int) error {
	db := config.GetDB()

	contact, err := GetClientContact(ctx, clientID, contactID)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(contact).Error
}

func ListClientContacts(ctx context.Context, clientID int, p Pagination) ([]ClientContact, int, int, error) {
	db := config.GetDB()
	p = p.Normalize()

	query := db.WithContext(ctx).Model(&ClientContact{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var contacts []ClientContact
	if err := query.Order("name DESC").Scopes(Paginate(p)).Find(&contacts).Error; err != nil {
		return nil, 0, 0, err
	}
	if len(contacts) == 0 {
		return nil, 0, 0, utils.ErrorRecordNotFound
	}

	return contacts, p.Page, TotalPages(total, p.PageSize), nil
}
