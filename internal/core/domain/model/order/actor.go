package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Actor identifies who initiates an operation on an order.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorVendor   Actor = "vendor"
)

// ParseActor converts request input into an Actor, case-insensitively.
func ParseActor(raw string) (Actor, error) {
	a := Actor(strings.ToLower(strings.TrimSpace(raw)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate rejects anything but customer, admin and vendor.
func (a Actor) Validate() error {
	switch a {
	case ActorCustomer, ActorAdmin, ActorVendor:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"actor",
			fmt.Errorf("%q is not a valid actor", string(a)),
		)
	}
}

func (a Actor) String() string {
	return string(a)
}

// PartKind tells who fulfils an order part: the platform itself or a vendor.
type PartKind string

const (
	KindAdmin  PartKind = "admin"
	KindVendor PartKind = "vendor"
)

// Validate rejects anything but admin and vendor.
func (k PartKind) Validate() error {
	switch k {
	case KindAdmin, KindVendor:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"kind",
			fmt.Errorf("%q is not a valid part kind", string(k)),
		)
	}
}

func (k PartKind) String() string {
	return string(k)
}
