package domain

import "fmt"

// PropertyType classifies a property by its physical characteristics.
type PropertyType string

const (
	PropertyApartment    PropertyType = "Apartment"
	PropertyHouse        PropertyType = "House"
	PropertyTownhouse    PropertyType = "Townhouse"
	PropertyCommercial   PropertyType = "Commercial"
	PropertyWarehouse    PropertyType = "Warehouse"
	PropertyParkingSpace PropertyType = "ParkingSpace"
)

// PropertyTypes lists all property types in their natural order.
// Analytics sort by this order, so the order is part of the contract.
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyHouse,
	PropertyTownhouse,
	PropertyCommercial,
	PropertyWarehouse,
	PropertyParkingSpace,
}

var propertyTypeOrder = func() map[PropertyType]int {
	m := make(map[PropertyType]int, len(PropertyTypes))
	for i, t := range PropertyTypes {
		m[t] = i
	}
	return m
}()

// Ordinal returns the position of the type in the natural order.
func (t PropertyType) Ordinal() int {
	return propertyTypeOrder[t]
}

// Valid reports whether the value is a known property type.
func (t PropertyType) Valid() bool {
	_, ok := propertyTypeOrder[t]
	return ok
}

// ParsePropertyType converts a wire string into a PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown property type: %q", s)
	}
	return t, nil
}

// PropertyPurpose is the zoning/use classification of a property.
type PropertyPurpose string

const (
	PurposeResidential PropertyPurpose = "Residential"
	PurposeCommercial  PropertyPurpose = "Commercial"
	PurposeIndustrial  PropertyPurpose = "Industrial"
)

// PropertyPurposes lists all purposes in their natural order.
var PropertyPurposes = []PropertyPurpose{
	PurposeResidential,
	PurposeCommercial,
	PurposeIndustrial,
}

// Valid reports whether the value is a known purpose.
func (p PropertyPurpose) Valid() bool {
	switch p {
	case PurposeResidential, PurposeCommercial, PurposeIndustrial:
		return true
	}
	return false
}

// ParsePropertyPurpose converts a wire string into a PropertyPurpose.
func ParsePropertyPurpose(s string) (PropertyPurpose, error) {
	p := PropertyPurpose(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown property purpose: %q", s)
	}
	return p, nil
}

// DefaultPurposeFor returns the conventional purpose for a property type.
// ParkingSpace has no convention and maps to Commercial here; the generator
// picks one at random instead.
func DefaultPurposeFor(t PropertyType) PropertyPurpose {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyTownhouse:
		return PurposeResidential
	case PropertyWarehouse:
		return PurposeIndustrial
	default:
		return PurposeCommercial
	}
}

// RequestType is the direction of a real-estate transaction.
type RequestType string

const (
	RequestPurchase RequestType = "Purchase"
	RequestSale     RequestType = "Sale"
)

// Valid reports whether the value is a known request type.
func (t RequestType) Valid() bool {
	return t == RequestPurchase || t == RequestSale
}

// ParseRequestType converts a wire string into a RequestType.
func ParseRequestType(s string) (RequestType, error) {
	t := RequestType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown request type: %q", s)
	}
	return t, nil
}
