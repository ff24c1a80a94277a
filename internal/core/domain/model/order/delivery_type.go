package order

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// DeliveryType tells the depot how the order is to be scheduled.
type DeliveryType int

const (
	UnknownDeliveryType DeliveryType = iota
	Normal
	Urgent
	Scheduled
)

func getDeliveryTypeCodes() map[DeliveryType]string {
	//nolint:exhaustive // UnknownDeliveryType has no code
	return map[DeliveryType]string{
		Normal:    "normal",
		Urgent:    "urgent",
		Scheduled: "scheduled",
	}
}

// ParseDeliveryType maps a code to a DeliveryType. An empty code means Normal.
func ParseDeliveryType(code string) (DeliveryType, error) {
	if code == "" {
		return Normal, nil
	}
	for t, c := range getDeliveryTypeCodes() {
		if c == code {
			return t, nil
		}
	}
	return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
		"delivery type is invalid",
		fmt.Errorf("%q is not a known delivery type", code),
	)
}

func (t DeliveryType) String() string {
	return getDeliveryTypeCodes()[t]
}

func (t DeliveryType) Validate() error {
	if _, ok := getDeliveryTypeCodes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery type is invalid", fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}
