package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCounterparty is the create/update payload for counterparties.
// It travels over HTTP and over the message bus.
type CreateCounterparty struct {
	FullName       string `json:"fullName"`
	PassportNumber string `json:"passportNumber"`
	PhoneNumber    string `json:"phoneNumber"`
}

// Validate checks field-level constraints.
func (d CreateCounterparty) Validate() error {
	if d.FullName == "" {
		return NewValidation("fullName is required")
	}
	if d.PassportNumber == "" {
		return NewValidation("passportNumber is required")
	}
	if d.PhoneNumber == "" {
		return NewValidation("phoneNumber is required")
	}
	return nil
}

// Entity builds a Counterparty from the payload. The ID is left empty and
// assigned by the repository.
func (d CreateCounterparty) Entity() *Counterparty {
	return &Counterparty{
		FullName:       d.FullName,
		PassportNumber: d.PassportNumber,
		PhoneNumber:    d.PhoneNumber,
	}
}

// CreateProperty is the create/update payload for properties.
type CreateProperty struct {
	Type            PropertyType    `json:"type"`
	Purpose         PropertyPurpose `json:"purpose"`
	CadastralNumber string          `json:"cadastralNumber"`
	Address         string          `json:"address"`
	TotalFloors     *int            `json:"totalFloors,omitempty"`
	TotalArea       float64         `json:"totalArea"`
	RoomsCount      *int            `json:"roomsCount,omitempty"`
	CeilingHeight   *float64        `json:"ceilingHeight,omitempty"`
	Floor           *int            `json:"floor,omitempty"`
	HasEncumbrances *bool           `json:"hasEncumbrances,omitempty"`
}

// Validate checks field-level constraints.
func (d CreateProperty) Validate() error {
	if !d.Type.Valid() {
		return NewValidation("unknown property type: %q", d.Type)
	}
	if !d.Purpose.Valid() {
		return NewValidation("unknown property purpose: %q", d.Purpose)
	}
	if d.CadastralNumber == "" {
		return NewValidation("cadastralNumber is required")
	}
	if d.Address == "" {
		return NewValidation("address is required")
	}
	if d.TotalArea <= 0 {
		return NewValidation("totalArea must be positive")
	}
	return nil
}

// Entity builds a Property from the payload.
func (d CreateProperty) Entity() *Property {
	p := &Property{
		Type:            d.Type,
		Purpose:         d.Purpose,
		CadastralNumber: d.CadastralNumber,
		Address:         d.Address,
		TotalFloors:     d.TotalFloors,
		TotalArea:       d.TotalArea,
		RoomsCount:      d.RoomsCount,
		CeilingHeight:   d.CeilingHeight,
		Floor:           d.Floor,
		HasEncumbrances: d.HasEncumbrances,
	}
	return p.Clone()
}

// CreateRequest is the create/update payload for requests.
type CreateRequest struct {
	CounterpartyID string          `json:"counterpartyId"`
	PropertyID     string          `json:"propertyId"`
	Type           RequestType     `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
}

// Validate checks field-level constraints. Referential integrity of the two
// ids is the request service's concern, not a field check.
func (d CreateRequest) Validate() error {
	if d.CounterpartyID == "" {
		return NewValidation("counterpartyId is required")
	}
	if d.PropertyID == "" {
		return NewValidation("propertyId is required")
	}
	if !d.Type.Valid() {
		return NewValidation("unknown request type: %q", d.Type)
	}
	if !d.Amount.IsPositive() {
		return NewValidation("amount must be positive")
	}
	if d.Date.IsZero() {
		return NewValidation("date is required")
	}
	return nil
}
