package order

import (
	"errors"
	"strings"

	"evashoes/internal/pkg/errs"
)

// ShippingAddress is the delivery address embedded in an order. Recipient name, phone
// and street address are required; the administrative divisions are optional because
// the address lookup on the storefront does not always resolve them.
type ShippingAddress struct {
	FullName string
	Phone    string
	Address  string
	City     string
	District string
	Ward     string
}

// NewShippingAddress trims every field and checks the required ones.
func NewShippingAddress(fullName, phone, address, city, district, ward string) (ShippingAddress, error) {
	a := ShippingAddress{
		FullName: strings.TrimSpace(fullName),
		Phone:    strings.TrimSpace(phone),
		Address:  strings.TrimSpace(address),
		City:     strings.TrimSpace(city),
		District: strings.TrimSpace(district),
		Ward:     strings.TrimSpace(ward),
	}
	if err := a.Validate(); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

func (a ShippingAddress) Validate() error {
	var errList []error
	if a.FullName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shippingAddress.fullName"))
	}
	if a.Phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shippingAddress.phone"))
	}
	if a.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shippingAddress.address"))
	}
	return errors.Join(errList...)
}
