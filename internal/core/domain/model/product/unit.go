package product

import (
	"fmt"
	"slices"
	"strings"

	"depot/internal/pkg/errs"
)

// Unit is the unit of measure a product is counted in.
type Unit string

const (
	UnitPiece   Unit = "UN"
	UnitPart    Unit = "PC"
	UnitKilo    Unit = "KG"
	UnitMeter   Unit = "MT"
	UnitLiter   Unit = "LT"
	UnitBox     Unit = "CX"
	UnitPackage Unit = "PCT"
)

func validUnits() []Unit {
	return []Unit{UnitPiece, UnitPart, UnitKilo, UnitMeter, UnitLiter, UnitBox, UnitPackage}
}

// ParseUnit normalises a unit code. An empty code means UnitPiece.
func ParseUnit(code string) (Unit, error) {
	if code == "" {
		return UnitPiece, nil
	}
	u := Unit(strings.ToUpper(strings.TrimSpace(code)))
	if err := u.Validate(); err != nil {
		return "", err
	}
	return u, nil
}

func (u Unit) Validate() error {
	if !slices.Contains(validUnits(), u) {
		return errs.NewValueIsInvalidErrorWithCause("unit is invalid", fmt.Errorf("%q is not a known unit", string(u)))
	}
	return nil
}

func (u Unit) String() string {
	return string(u)
}
