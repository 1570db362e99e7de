package models

import (
	"encoding/json"
	"errors"
	"strings"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleClient UserRole = "client"
)

func (p *UserRole) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("user role must be string")
	}
	userRole := map[string]UserRole{
		"admin":  UserRoleAdmin,
		"client": UserRoleClient,
	}
	r, ok := userRole[strings.ToLower(str)]
	if !ok {
		return errors.New("invalid user role")
	}
	*p = r
	return nil
}

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusSent      ContractStatus = "sent"
	ContractStatusSigned    ContractStatus = "signed"
	ContractStatusCancelled ContractStatus = "cancelled"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusIssued  InvoiceStatus = "issued"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
)

// ParseLeadStatus accepts any case; the empty string is not a status.
func ParseLeadStatus(s string) (LeadStatus, bool) {
	leadStatus := map[string]LeadStatus{
		"new":       LeadStatusNew,
		"contacted": LeadStatusContacted,
		"qualified": LeadStatusQualified,
		"converted": LeadStatusConverted,
	}
	st, ok := leadStatus[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}
