package repository

import (
	"context"
	"fmt"

	"sigil/database"
	"sigil/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// UnitOfWork coordinates repositories over a single transaction so a
// request's reads and writes commit or roll back together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CheckIns() interfaces.CheckInRepository
	DayClaims() interfaces.DayClaimRepository
	RewardLedger() interfaces.RewardLedgerRepository
	Mints() interfaces.MintRepository
	Clicks() interfaces.ClickRepository
}

// UnitOfWorkFactory creates fresh units of work bound to the shared pool.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

func (f *unitOfWorkFactory) Create() UnitOfWork {
	return &unitOfWork{db: f.db}
}

type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	checkInRepo      interfaces.CheckInRepository
	dayClaimRepo     interfaces.DayClaimRepository
	rewardLedgerRepo interfaces.RewardLedgerRepository
	mintRepo         interfaces.MintRepository
	clickRepo        interfaces.ClickRepository
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.checkInRepo = NewCheckInRepository(tx)
	u.dayClaimRepo = NewDayClaimRepository(tx)
	u.rewardLedgerRepo = NewRewardLedgerRepository(tx)
	u.mintRepo = NewMintRepository(tx)
	u.clickRepo = NewClickRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	if err := u.tx.Rollback(u.ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// CheckIns returns the check-in repository for this unit of work
func (u *unitOfWork) CheckIns() interfaces.CheckInRepository {
	if u.checkInRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.checkInRepo
}

// DayClaims returns the day claim repository for this unit of work
func (u *unitOfWork) DayClaims() interfaces.DayClaimRepository {
	if u.dayClaimRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.dayClaimRepo
}

// RewardLedger returns the reward ledger repository for this unit of work
func (u *unitOfWork) RewardLedger() interfaces.RewardLedgerRepository {
	if u.rewardLedgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rewardLedgerRepo
}

// Mints returns the mint registry repository for this unit of work
func (u *unitOfWork) Mints() interfaces.MintRepository {
	if u.mintRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.mintRepo
}

// Clicks returns the click tracking repository for this unit of work
func (u *unitOfWork) Clicks() interfaces.ClickRepository {
	if u.clickRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.clickRepo
}
