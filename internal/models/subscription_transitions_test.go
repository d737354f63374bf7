package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionSubscription(t *testing.T) {
	cases := []struct {
		name    string
		from    SubscriptionStatus
		to      SubscriptionStatus
		allowed bool
	}{
		{"initiated to pending", SubscriptionStatusInitiated, SubscriptionStatusPending, true},
		{"initiated to active", SubscriptionStatusInitiated, SubscriptionStatusActive, true},
		{"initiated to failed", SubscriptionStatusInitiated, SubscriptionStatusFailed, true},
		{"initiated to expired", SubscriptionStatusInitiated, SubscriptionStatusExpired, false},
		{"pending to active", SubscriptionStatusPending, SubscriptionStatusActive, true},
		{"pending to failed", SubscriptionStatusPending, SubscriptionStatusFailed, true},
		{"pending to cancelled", SubscriptionStatusPending, SubscriptionStatusCancelled, true},
		{"pending to expired", SubscriptionStatusPending, SubscriptionStatusExpired, false},
		{"active to cancelled", SubscriptionStatusActive, SubscriptionStatusCancelled, true},
		{"active to expired", SubscriptionStatusActive, SubscriptionStatusExpired, true},
		{"active to failed", SubscriptionStatusActive, SubscriptionStatusFailed, false},
		{"failed to pending", SubscriptionStatusFailed, SubscriptionStatusPending, true},
		{"failed to active", SubscriptionStatusFailed, SubscriptionStatusActive, true},
		{"failed to cancelled", SubscriptionStatusFailed, SubscriptionStatusCancelled, false},
		{"cancelled is terminal", SubscriptionStatusCancelled, SubscriptionStatusActive, false},
		{"expired is terminal", SubscriptionStatusExpired, SubscriptionStatusActive, false},
		{"no self transition", SubscriptionStatusActive, SubscriptionStatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransitionSubscription(tc.from, tc.to))
		})
	}
}

func TestValidSubscriptionTransitionsFrom(t *testing.T) {
	assert.Equal(t,
		[]SubscriptionStatus{SubscriptionStatusCancelled, SubscriptionStatusExpired},
		ValidSubscriptionTransitionsFrom(SubscriptionStatusActive))

	assert.Empty(t, ValidSubscriptionTransitionsFrom(SubscriptionStatusCancelled))
	assert.Empty(t, ValidSubscriptionTransitionsFrom(SubscriptionStatusExpired))
}

func TestSubscriptionIsTerminal(t *testing.T) {
	assert.True(t, (&Subscription{Status: SubscriptionStatusCancelled}).IsTerminal())
	assert.True(t, (&Subscription{Status: SubscriptionStatusExpired}).IsTerminal())
	assert.False(t, (&Subscription{Status: SubscriptionStatusActive}).IsTerminal())
	assert.False(t, (&Subscription{Status: SubscriptionStatusPending}).IsTerminal())
}
