package testutil

import (
	"time"

	"sigil/domain/entities"
)

// CreateTestCheckIn creates a check-in with base weight for the given day
func CreateTestCheckIn(epochDay int64, wallet string) *entities.CheckIn {
	return &entities.CheckIn{
		EpochDay:    epochDay,
		Wallet:      wallet,
		Weight:      entities.WeightBase,
		CheckedInAt: time.Now(),
	}
}

// CreateTestBonusCheckIn creates a check-in with early-bird bonus weight
func CreateTestBonusCheckIn(epochDay int64, wallet string) *entities.CheckIn {
	checkIn := CreateTestCheckIn(epochDay, wallet)
	checkIn.Weight = entities.WeightBonus
	return checkIn
}

// CreateTestDayClaim creates an unsettled, approved day claim
func CreateTestDayClaim(epochDay int64, claimerWallet string, incentiveLamports int64) *entities.DayClaim {
	return &entities.DayClaim{
		EpochDay:          epochDay,
		ClaimerWallet:     claimerWallet,
		IncentiveLamports: incentiveLamports,
		TotalWeight:       0,
		ModerationStatus:  entities.ModerationApproved,
		ClaimedAt:         time.Now(),
	}
}

// CreateTestRewardRecord creates a sent payout record
func CreateTestRewardRecord(epochDay int64, wallet string, amountLamports int64) *entities.RewardRecord {
	sig := "test-signature"
	return &entities.RewardRecord{
		EpochDay:       epochDay,
		Wallet:         wallet,
		AmountLamports: amountLamports,
		TxSignature:    &sig,
		Status:         entities.RewardStatusSent,
	}
}

// CreateTestMint creates a mint registry entry
func CreateTestMint(tokenID int64, mintAddress, ownerWallet string) *entities.NFTMint {
	return &entities.NFTMint{
		TokenID:     tokenID,
		MintAddress: mintAddress,
		OwnerWallet: ownerWallet,
	}
}
