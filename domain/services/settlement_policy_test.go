package services

import (
	"testing"

	"sigil/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestSettlementPolicy_CanSettle(t *testing.T) {
	p := NewSettlementPolicy()

	assert.True(t, p.CanSettle(99, 100))
	assert.False(t, p.CanSettle(100, 100))
	assert.False(t, p.CanSettle(101, 100))
}

func TestSettlementPolicy_Classify(t *testing.T) {
	p := NewSettlementPolicy()
	today := int64(100)

	tests := []struct {
		name        string
		claim       *entities.DayClaim
		totalWeight int64
		expected    entities.SettleStatus
	}{
		{"unclaimed day", nil, 5, entities.SettleStatusNoClaim},
		{"today", &entities.DayClaim{EpochDay: 100}, 5, entities.SettleStatusNotYetClosed},
		{"future day", &entities.DayClaim{EpochDay: 101}, 5, entities.SettleStatusNotYetClosed},
		{"already settled", &entities.DayClaim{EpochDay: 99, TotalWeight: 7}, 5, entities.SettleStatusAlreadySettled},
		{"no check-ins", &entities.DayClaim{EpochDay: 99}, 0, entities.SettleStatusNoParticipants},
		{"eligible", &entities.DayClaim{EpochDay: 99}, 5, entities.SettleStatusSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Classify(tt.claim, tt.totalWeight, today))
		})
	}
}
