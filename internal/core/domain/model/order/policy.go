package order

import (
	"fmt"
	"strings"

	"depot/internal/pkg/errs"
)

// TransitionPolicy decides which status changes an order accepts.
type TransitionPolicy int

const (
	// Strict accepts only the next step of the workflow or a cancellation.
	Strict TransitionPolicy = iota

	// Permissive accepts any change between distinct statuses as long as the
	// current status is not terminal. It exists for manual corrections, such
	// as moving an order back to Planned.
	Permissive
)

// ParseTransitionPolicy reads "strict" or "permissive" (case-insensitive).
// An empty string selects Strict.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	default:
		return Strict, errs.NewValueIsInvalidErrorWithCause(
			"transition policy is invalid",
			fmt.Errorf("%q is neither strict nor permissive", s),
		)
	}
}

func (p TransitionPolicy) String() string {
	if p == Permissive {
		return "permissive"
	}
	return "strict"
}

// Check returns an *InvalidTransitionError when from -> to is not accepted.
//
// Rules shared by both policies:
//   - terminal statuses have no outbound transition
//   - a transition must change the status
//   - the target must be a valid status
func (p TransitionPolicy) Check(from, to Status) error {
	if err := to.Validate(); err != nil {
		return NewInvalidTransitionError(from, to, "target status is not valid")
	}
	if from.IsTerminal() {
		return NewInvalidTransitionError(from, to, fmt.Sprintf("%s is a terminal status", from))
	}
	if from == to {
		return NewInvalidTransitionError(from, to, "status is unchanged")
	}
	if p == Permissive {
		return nil
	}
	if to == Cancelled || to == from.next() {
		return nil
	}
	return NewInvalidTransitionError(from, to, fmt.Sprintf("%s may only move to %s or %s", from, from.next(), Cancelled))
}

// AllowedTargets lists the statuses reachable from s in one transition.
func (p TransitionPolicy) AllowedTargets(s Status) []Status {
	targets := make([]Status, 0, 4)
	for _, to := range AllStatuses() {
		if p.Check(s, to) == nil {
			targets = append(targets, to)
		}
	}
	return targets
}
