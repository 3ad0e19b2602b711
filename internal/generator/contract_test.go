package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/opensource-realty/casa/internal/domain"
	"github.com/shopspring/decimal"
)

func TestCounterpartyGeneration(t *testing.T) {
	g := NewContractSeeded(1)

	for i := 0; i < 100; i++ {
		c := g.Counterparty()

		if err := c.Validate(); err != nil {
			t.Fatalf("generated counterparty invalid: %v", err)
		}
		if len(strings.Fields(c.FullName)) != 3 {
			t.Errorf("expected 'last first patronymic', got %q", c.FullName)
		}
		if !strings.HasPrefix(c.PhoneNumber, "+7") {
			t.Errorf("expected a +7 phone number, got %q", c.PhoneNumber)
		}
	}
}

func TestPropertyGeneration(t *testing.T) {
	g := NewContractSeeded(2)

	for i := 0; i < 500; i++ {
		p := g.Property()

		if err := p.Validate(); err != nil {
			t.Fatalf("generated property invalid: %v", err)
		}

		// A floor never exceeds the total floors of its building.
		if p.Floor != nil {
			if p.TotalFloors == nil {
				t.Fatalf("%s has a floor but no total floors", p.Type)
			}
			if *p.Floor < 1 || *p.Floor > *p.TotalFloors {
				t.Errorf("%s floor %d outside [1, %d]", p.Type, *p.Floor, *p.TotalFloors)
			}
		}

		if p.CeilingHeight != nil && (*p.CeilingHeight < 2.5 || *p.CeilingHeight > 4.0) {
			t.Errorf("ceiling height %v outside [2.5, 4.0]", *p.CeilingHeight)
		}

		switch p.Type {
		case domain.PropertyApartment:
			if p.TotalArea < 25 || p.TotalArea > 150 {
				t.Errorf("apartment area %v outside [25, 150]", p.TotalArea)
			}
			if !strings.Contains(p.Address, "кв.") {
				t.Errorf("apartment address lacks a unit number: %q", p.Address)
			}
		case domain.PropertyWarehouse:
			if p.TotalArea < 200 || p.TotalArea > 5000 {
				t.Errorf("warehouse area %v outside [200, 5000]", p.TotalArea)
			}
			if p.Purpose != domain.PurposeIndustrial {
				t.Errorf("warehouse purpose %s, expected Industrial", p.Purpose)
			}
		case domain.PropertyParkingSpace:
			if p.TotalFloors != nil || p.Floor != nil {
				t.Error("parking space must not carry floors")
			}
			if p.TotalArea < 12 || p.TotalArea > 30 {
				t.Errorf("parking area %v outside [12, 30]", p.TotalArea)
			}
		case domain.PropertyHouse, domain.PropertyTownhouse:
			if p.Purpose != domain.PurposeResidential {
				t.Errorf("%s purpose %s, expected Residential", p.Type, p.Purpose)
			}
		case domain.PropertyCommercial:
			if p.Purpose != domain.PurposeCommercial {
				t.Errorf("commercial purpose %s, expected Commercial", p.Purpose)
			}
		}
	}
}

func TestRequestGeneration(t *testing.T) {
	g := NewContractSeeded(3)

	low := decimal.NewFromInt(1_000_000)
	high := decimal.NewFromInt(50_000_000)
	now := time.Now()

	for i := 0; i < 200; i++ {
		r := g.Request("cp-1", "prop-1")

		if err := r.Validate(); err != nil {
			t.Fatalf("generated request invalid: %v", err)
		}
		if r.CounterpartyID != "cp-1" || r.PropertyID != "prop-1" {
			t.Error("request must reference the given ids")
		}
		if r.Amount.LessThan(low) || r.Amount.GreaterThan(high) {
			t.Errorf("amount %s outside [1000000, 50000000]", r.Amount)
		}
		if r.Date.After(now.Add(time.Minute)) || r.Date.Before(now.AddDate(-2, 0, -1)) {
			t.Errorf("date %s outside the trailing two years", r.Date)
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewContractSeeded(42)
	b := NewContractSeeded(42)

	for i := 0; i < 20; i++ {
		if a.Counterparty() != b.Counterparty() {
			t.Fatal("same seed produced different counterparties")
		}
	}
}
