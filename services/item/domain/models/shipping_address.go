package models

import "strings"

// ShippingAddress says where an item ships to and, optionally, from.
// Optional parts are empty strings when absent.
type ShippingAddress struct {
	shipTo        string
	shipToAddress string
	shipFrom      string
}

// NewShippingAddress trims every part; shipTo is required.
func NewShippingAddress(shipTo, shipToAddress, shipFrom string) (ShippingAddress, error) {
	to, err := requiredText("shipTo", shipTo)
	if err != nil {
		return ShippingAddress{}, err
	}
	return ShippingAddress{
		shipTo:        to,
		shipToAddress: strings.TrimSpace(shipToAddress),
		shipFrom:      strings.TrimSpace(shipFrom),
	}, nil
}

func (a ShippingAddress) ShipTo() string        { return a.shipTo }
func (a ShippingAddress) ShipToAddress() string { return a.shipToAddress }
func (a ShippingAddress) ShipFrom() string      { return a.shipFrom }

// FullAddress joins the destination and its street address when one is set.
func (a ShippingAddress) FullAddress() string {
	if a.shipToAddress == "" {
		return a.shipTo
	}
	return a.shipTo + ", " + a.shipToAddress
}

// WithShipFrom returns a copy with a new origin, re-validating the address.
func (a ShippingAddress) WithShipFrom(shipFrom string) (ShippingAddress, error) {
	return NewShippingAddress(a.shipTo, a.shipToAddress, shipFrom)
}
