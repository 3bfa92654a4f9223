package settlement

import (
	"context"
	"strings"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Journal is the default settlement bridge: a double-entry journal over the
// transfers and accounts tables. Each transfer writes one immutable journal
// row and adjusts both parties' running balances in the same transaction.
type Journal struct {
	db *gorm.DB
}

// NewJournal returns a journal bridge bound to the provided database.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// WithTx rebinds the journal to an open transaction.
func (j *Journal) WithTx(tx *gorm.DB) Bridge {
	if tx == nil {
		return j
	}
	return &Journal{db: tx}
}

// Transfer records the movement of amountCents from one identity to another.
func (j *Journal) Transfer(ctx context.Context, propertyID int64, from, to string, amountCents int64, kind models.TransferKind) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return pkgerrors.New(pkgerrors.CodeSettlementFailed, "transfer requires both parties")
	}
	if amountCents < 0 {
		return pkgerrors.New(pkgerrors.CodeSettlementFailed, "transfer amount must not be negative")
	}
	if amountCents == 0 {
		return nil
	}

	row := models.Transfer{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		FromIdentity: from,
		ToIdentity:   to,
		AmountCents:  amountCents,
		Kind:         kind,
	}
	if err := j.db.WithContext(ctx).Create(&row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSettlementFailed, err, "record transfer")
	}

	if err := j.adjustBalance(ctx, from, -amountCents); err != nil {
		return err
	}
	return j.adjustBalance(ctx, to, amountCents)
}

func (j *Journal) adjustBalance(ctx context.Context, identity string, deltaCents int64) error {
	account := models.Account{Identity: identity, BalanceCents: deltaCents}
	err := j.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "identity"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance_cents": gorm.Expr("accounts.balance_cents + ?", deltaCents),
			}),
		}).
		Create(&account).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSettlementFailed, err, "adjust balance")
	}
	return nil
}

// Balance returns the current settlement balance for an identity, zero when
// the identity has never settled.
func (j *Journal) Balance(ctx context.Context, identity string) (int64, error) {
	var account models.Account
	err := j.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	return account.BalanceCents, nil
}
