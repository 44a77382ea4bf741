package kernel

import (
	"errors"
	"strings"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a delivery address. Street, city and zip code are mandatory;
// state and country are free-form and may be empty.
type Address struct { //nolint:recvcheck //using for validation
	street  string
	city    string
	state   string
	zipCode string
	country string
	guard   guard.ConstructorGuard
}

func NewAddress(street, city, state, zipCode, country string) (Address, error) {
	a := Address{
		state:   strings.TrimSpace(state),
		country: strings.TrimSpace(country),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setStreet(street),
		a.setCity(city),
		a.setZipCode(zipCode),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string  { return a.street }
func (a Address) City() string    { return a.city }
func (a Address) State() string   { return a.state }
func (a Address) ZipCode() string { return a.zipCode }
func (a Address) Country() string { return a.country }

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setZipCode(zipCode string) error {
	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return errs.NewValueIsRequiredError("zipCode")
	}
	a.zipCode = zipCode
	return nil
}
