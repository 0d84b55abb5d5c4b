package domain

import (
	"fmt"
	"strings"
)

// PassengerKey identifies a passenger by value. Hydration can produce
// distinct instances for the same person, so bookings are keyed by
// (name, surname) rather than by pointer.
type PassengerKey struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (k PassengerKey) FullName() string {
	return k.Name + " " + k.Surname
}

type Passenger struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phone_number"`
}

// NewPassenger validates a fresh passenger. It does not persist;
// persistence and the duplicate check belong to the passenger service.
func NewPassenger(name, surname, phone string) (*Passenger, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return nil, fmt.Errorf("%w: name and surname are required", ErrInvalidArgument)
	}
	if !ValidPhoneNumber(phone) {
		return nil, fmt.Errorf("%w: phone number %q", ErrInvalidFormat, phone)
	}
	return &Passenger{Name: name, Surname: surname, PhoneNumber: phone}, nil
}

// RestorePassenger rebuilds a passenger from storage. Fields passed
// validation on write, so none is repeated here.
func RestorePassenger(id int64, name, surname, phone string) *Passenger {
	return &Passenger{ID: id, Name: name, Surname: surname, PhoneNumber: phone}
}

func (p *Passenger) Key() PassengerKey {
	return PassengerKey{Name: p.Name, Surname: p.Surname}
}

func (p *Passenger) FullName() string {
	return p.Key().FullName()
}

func (p *Passenger) SetPhoneNumber(phone string) error {
	if !ValidPhoneNumber(phone) {
		return fmt.Errorf("%w: phone number %q", ErrInvalidFormat, phone)
	}
	p.PhoneNumber = phone
	return nil
}
