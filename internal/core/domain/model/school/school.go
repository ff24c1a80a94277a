// Package school models the schools the depot delivers to.
package school

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

const (
	DefaultCity  = "Magalhães de Almeida"
	DefaultState = "MA"
)

var (
	ErrSchoolIsNotConstructed = errors.New("School must be created via NewSchool constructor")

	// ErrSchoolIsInactive is returned when an order is placed for a school
	// that no longer receives deliveries.
	ErrSchoolIsInactive = errors.New("school is inactive")
)

// Kind is the administrative sphere of a school.
type Kind string

const (
	Municipal Kind = "municipal"
	StateRun  Kind = "estadual"
	Federal   Kind = "federal"
	Private   Kind = "particular"
)

// Level is the teaching level of a school.
type Level string

const (
	Infant     Level = "infantil"
	Elementary Level = "fundamental"
	HighSchool Level = "medio"
	Technical  Level = "tecnico"
	Higher     Level = "superior"
)

// Address locates a school.
type Address struct {
	Street   string
	District string
	City     string
	State    string
}

// School is a delivery destination.
type School struct {
	id       kernel.UUID
	name     string
	inepCode string
	kind     Kind
	level    Level
	address  Address
	active   bool

	isConstructed bool
}

// NewSchool registers an active school. Empty kind, level, city and state
// take the depot's defaults.
func NewSchool(id kernel.UUID, name, inepCode string, kind Kind, level Level, address Address) (*School, error) {
	s := &School{active: true, isConstructed: true, inepCode: strings.TrimSpace(inepCode)}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setKind(kind),
		s.setLevel(level),
		s.setAddress(address),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreSchool rebuilds a stored school.
func RestoreSchool(id kernel.UUID, name, inepCode string, kind Kind, level Level, address Address, active bool) (*School, error) {
	s, err := NewSchool(id, name, inepCode, kind, level, address)
	if err != nil {
		return nil, err
	}
	s.active = active
	return s, nil
}

func (s *School) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSchoolIsNotConstructed
	}
	return nil
}

func (s *School) ID() kernel.UUID { return s.id }
func (s *School) Name() string { return s.name }
func (s *School) INEPCode() string { return s.inepCode }
func (s *School) Kind() Kind { return s.kind }
func (s *School) Level() Level { return s.level }
func (s *School) Address() Address { return s.address }
func (s *School) IsActive() bool { return s.active }

// EnsureCanReceive fails for schools that were deactivated.
func (s *School) EnsureCanReceive() error {
	if !s.active {
		return fmt.Errorf("%w: %s", ErrSchoolIsInactive, s.name)
	}
	return nil
}

func (s *School) Deactivate() {
	s.active = false
}

func (s *School) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *School) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *School) setKind(k Kind) error {
	if k == "" {
		k = Municipal
	}
	if !slices.Contains([]Kind{Municipal, StateRun, Federal, Private}, k) {
		return errs.NewValueIsInvalidErrorWithCause("school kind is invalid", fmt.Errorf("%q is not a known kind", string(k)))
	}
	s.kind = k
	return nil
}

func (s *School) setLevel(l Level) error {
	if l == "" {
		l = Elementary
	}
	if !slices.Contains([]Level{Infant, Elementary, HighSchool, Technical, Higher}, l) {
		return errs.NewValueIsInvalidErrorWithCause("school level is invalid", fmt.Errorf("%q is not a known level", string(l)))
	}
	s.level = l
	return nil
}

func (s *School) setAddress(a Address) error {
	a.Street = strings.TrimSpace(a.Street)
	a.District = strings.TrimSpace(a.District)
	if a.City = strings.TrimSpace(a.City); a.City == "" {
		a.City = DefaultCity
	}
	if a.State = strings.ToUpper(strings.TrimSpace(a.State)); a.State == "" {
		a.State = DefaultState
	}

	var problems []error
	if a.Street == "" {
		problems = append(problems, errs.NewValueIsRequiredError("street"))
	}
	if a.District == "" {
		problems = append(problems, errs.NewValueIsRequiredError("district"))
	}
	if len(a.State) != 2 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a two letter code", a.State)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	s.address = a
	return nil
}
