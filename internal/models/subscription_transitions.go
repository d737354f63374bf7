package models

import "slices"

// SubscriptionTransition represents a valid state transition.
type SubscriptionTransition struct {
	From SubscriptionStatus
	To   SubscriptionStatus
}

// validSubscriptionTransitions defines all allowed state transitions.
// Cancelled and expired are terminal.
var validSubscriptionTransitions = map[SubscriptionTransition]bool{
	{SubscriptionStatusInitiated, SubscriptionStatusPending}: true, // payment details submitted
	{SubscriptionStatusInitiated, SubscriptionStatusActive}:  true, // direct admin grant
	{SubscriptionStatusInitiated, SubscriptionStatusFailed}:  true, // abandoned / rejected placeholder

	{SubscriptionStatusPending, SubscriptionStatusActive}:    true, // payment verified
	{SubscriptionStatusPending, SubscriptionStatusFailed}:    true, // payment not found
	{SubscriptionStatusPending, SubscriptionStatusCancelled}: true, // withdrawn before review

	{SubscriptionStatusActive, SubscriptionStatusCancelled}: true, // user or admin cancellation
	{SubscriptionStatusActive, SubscriptionStatusExpired}:   true, // validity window elapsed

	{SubscriptionStatusFailed, SubscriptionStatusPending}: true, // re-submission after rejection
	{SubscriptionStatusFailed, SubscriptionStatusActive}:  true, // admin reversal
}

// CanTransitionSubscription checks if a transition from one status to another
// is valid.
func CanTransitionSubscription(from, to SubscriptionStatus) bool {
	return validSubscriptionTransitions[SubscriptionTransition{from, to}]
}

// ValidSubscriptionTransitionsFrom returns all valid target statuses from the
// given status.
func ValidSubscriptionTransitionsFrom(from SubscriptionStatus) []SubscriptionStatus {
	targets := make([]SubscriptionStatus, 0)
	for t := range validSubscriptionTransitions {
		if t.From == from {
			targets = append(targets, t.To)
		}
	}

	// Stabilize ordering for deterministic callers/tests.
	slices.Sort(targets)
	return targets
}
