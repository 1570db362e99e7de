package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Contract struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OwnerId        string          `gorm:"size:36;not null;index" json:"owner_id"`
	ContractNumber string          `gorm:"size:50" json:"contract_number"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Status         ContractStatus  `gorm:"type:enum('draft','sent','signed','cancelled');default:draft" json:"status"`
	Value          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"value"`
	Currency       string          `gorm:"size:3;default:USD" json:"currency"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
	DocumentUrl    *string         `gorm:"size:1024" json:"document_url"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Contract) GetID() int              { return c.ID }
func (c Contract) GetOwnerId() string      { return c.OwnerId }
func (c Contract) GetNumber() string       { return c.ContractNumber }
func (c Contract) GetDocumentUrl() *string { return c.DocumentUrl }
func (Contract) DocumentCategory() string  { return "contracts" }

func (c Contract) DocumentTitle() string {
	if c.ContractNumber != "" {
		return "Contract " + c.ContractNumber
	}
	return "Contract #" + strconv.Itoa(c.ID)
}

func (c Contract) DocumentFields() []DocumentField {
	fields := []DocumentField{
		{Label: "Title", Value: c.Title},
		{Label: "Status", Value: string(c.Status)},
		{Label: "Value", Value: c.Value.StringFixed(2) + " " + c.Currency},
	}
	if c.StartDate != nil {
		fields = append(fields, DocumentField{Label: "Start date", Value: c.StartDate.Format("2006-01-02")})
	}
	if c.EndDate != nil {
		fields = append(fields, DocumentField{Label: "End date", Value: c.EndDate.Format("2006-01-02")})
	}
	if c.Description != "" {
		fields = append(fields, DocumentField{Label: "Description", Value: c.Description})
	}
	return fields
}
