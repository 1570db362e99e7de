package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	OwnerId       string          `gorm:"size:36;not null;index" json:"owner_id"`
	InvoiceNumber string          `gorm:"size:50" json:"invoice_number"`
	Status        InvoiceStatus   `gorm:"type:enum('draft','issued','paid','overdue','void');default:draft" json:"status"`
	IssueDate     time.Time       `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	Currency      string          `gorm:"size:3;default:USD" json:"currency"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Lines         []InvoiceLine   `gorm:"foreignKey:InvoiceId" json:"lines"`
	DocumentUrl   *string         `gorm:"size:1024" json:"document_url"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceLine struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InvoiceId   int             `gorm:"index;not null" json:"invoice_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
}

func (i Invoice) GetID() int              { return i.ID }
func (i Invoice) GetOwnerId() string      { return i.OwnerId }
func (i Invoice) GetNumber() string       { return i.InvoiceNumber }
func (i Invoice) GetDocumentUrl() *string { return i.DocumentUrl }
func (Invoice) DocumentCategory() string  { return "invoices" }

func (i Invoice) DocumentTitle() string {
	if i.InvoiceNumber != "" {
		return "Invoice " + i.InvoiceNumber
	}
	return "Invoice #" + strconv.Itoa(i.ID)
}

func (i Invoice) DocumentFields() []DocumentField {
	fields := []DocumentField{
		{Label: "Status", Value: string(i.Status)},
		{Label: "Issue date", Value: i.IssueDate.Format("2006-01-02")},
	}
	if i.DueDate != nil {
		fields = append(fields, DocumentField{Label: "Due date", Value: i.DueDate.Format("2006-01-02")})
	}
	for _, line := range i.Lines {
		fields = append(fields, DocumentField{
			Label: line.Description,
			Value: line.Quantity.String() + " x " + line.UnitPrice.StringFixed(2) + " = " + line.Amount.StringFixed(2),
		})
	}
	fields = append(fields,
		DocumentField{Label: "Subtotal", Value: i.Subtotal.StringFixed(2) + " " + i.Currency},
		DocumentField{Label: "Tax", Value: i.TaxAmount.StringFixed(2) + " " + i.Currency},
		DocumentField{Label: "Total", Value: i.Total.StringFixed(2) + " " + i.Currency},
	)
	if i.Notes != "" {
		fields = append(fields, DocumentField{Label: "Notes", Value: i.Notes})
	}
	return fields
}
