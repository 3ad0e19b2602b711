// Package domain defines the core entities, interfaces and configuration
// for the casa back office.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Counterparty is an individual party (buyer or seller) in a transaction.
type Counterparty struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	PassportNumber string `json:"passportNumber"`
	PhoneNumber    string `json:"phoneNumber"`
}

// Clone returns a deep copy.
func (c *Counterparty) Clone() *Counterparty {
	cp := *c
	return &cp
}

// Property is a real-estate asset with physical and legal attributes.
// TotalFloors, RoomsCount, CeilingHeight, Floor and HasEncumbrances are
// optional; Floor may be negative for below-ground levels.
type Property struct {
	ID              string          `json:"id"`
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

// Clone returns a deep copy.
func (p *Property) Clone() *Property {
	cp := *p
	cp.TotalFloors = cloneInt(p.TotalFloors)
	cp.RoomsCount = cloneInt(p.RoomsCount)
	cp.CeilingHeight = cloneFloat(p.CeilingHeight)
	cp.Floor = cloneInt(p.Floor)
	cp.HasEncumbrances = cloneBool(p.HasEncumbrances)
	return &cp
}

// Request links one counterparty, one property, a direction, an amount and a
// date. CounterpartyID and PropertyID are authoritative; the Counterparty and
// Property fields are denormalized snapshots taken at create/update time and
// serve only as a read fallback when the referenced entity no longer exists.
type Request struct {
	ID             string          `json:"id"`
	CounterpartyID string          `json:"counterpartyId"`
	PropertyID     string          `json:"propertyId"`
	Counterparty   *Counterparty   `json:"counterparty,omitempty"`
	Property       *Property       `json:"property,omitempty"`
	Type           RequestType     `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
}

// Clone returns a deep copy.
func (r *Request) Clone() *Request {
	cp := *r
	if r.Counterparty != nil {
		cp.Counterparty = r.Counterparty.Clone()
	}
	if r.Property != nil {
		cp.Property = r.Property.Clone()
	}
	return &cp
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
