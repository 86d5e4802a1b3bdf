package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/saldeo-connector/internal/money"
)

// FinishedPayment is a completed payment session, flattened from the
// platform's wire format into explicit static fields.
type FinishedPayment struct {
	GUID             string
	Created          time.Time
	Finished         bool
	InvoiceRequested bool
	CompanyName      string
	Email            string
	Street           string
	PostCode         string
	City             string
	Country          string
	NIP              string
	Amount           decimal.Decimal
	ProductName      string
	Quantity         int
	CreatedBy        string
}

// paymentSession mirrors the payments platform's JSON. Invoice details are
// optional on the wire; the pointer keeps absence explicit.
type paymentSession struct {
	GUID        string       `json:"guid"`
	Created     time.Time    `json:"created"`
	Finished    bool         `json:"finished"`
	CreatedBy   *createdBy   `json:"createdBy"`
	InvoiceData *invoiceData `json:"invoiceData"`
}

type createdBy struct {
	DisplayName string `json:"displayName"`
}

type invoiceData struct {
	City             string            `json:"city"`
	NIP              string            `json:"nip"`
	Street           string            `json:"street"`
	Country          string            `json:"country"`
	CompanyName      string            `json:"companyName"`
	InvoiceEmail     string            `json:"invoiceEmail"`
	PostCode         string            `json:"postCode"`
	InvoiceRequested bool              `json:"invoiceRequested"`
	SubscriptionPlan *subscriptionPlan `json:"subscriptionPlan"`
}

type subscriptionPlan struct {
	Value    string `json:"value"`
	PlanName string `json:"planName"`
}

// mapSession flattens one wire record. Absent optional sections map to zero
// values; a malformed amount maps to zero rather than failing the batch.
func mapSession(s paymentSession) FinishedPayment {
	p := FinishedPayment{
		GUID:     s.GUID,
		Created:  s.Created,
		Finished: s.Finished,
		Quantity: 1,
	}
	if s.CreatedBy != nil {
		p.CreatedBy = s.CreatedBy.DisplayName
	}
	if inv := s.InvoiceData; inv != nil {
		p.InvoiceRequested = inv.InvoiceRequested
		p.CompanyName = inv.CompanyName
		p.Email = inv.InvoiceEmail
		p.Street = inv.Street
		p.PostCode = inv.PostCode
		p.City = inv.City
		p.Country = inv.Country
		p.NIP = inv.NIP
		if inv.SubscriptionPlan != nil {
			if amount, err := money.FromString(inv.SubscriptionPlan.Value); err == nil {
				p.Amount = amount
			}
			p.ProductName = inv.SubscriptionPlan.PlanName
		}
	}
	return p
}
