package settlement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
)

func newTestJournal(t *testing.T) (*Journal, *gorm.DB) {
	t.Helper()

	dsn := "file:journal_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Transfer{}, &models.Account{}))
	return NewJournal(conn), conn
}

func TestTransferMovesBalances(t *testing.T) {
	journal, conn := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, journal.Transfer(ctx, 0, "guest-1", "owner-1", 20, models.TransferKindBookingPayment))
	require.NoError(t, journal.Transfer(ctx, 0, "guest-1", "owner-1", 5, models.TransferKindBookingPayment))

	ownerBalance, err := journal.Balance(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, int64(25), ownerBalance)

	guestBalance, err := journal.Balance(ctx, "guest-1")
	require.NoError(t, err)
	require.Equal(t, int64(-25), guestBalance)

	var rows int64
	require.NoError(t, conn.Model(&models.Transfer{}).Count(&rows).Error)
	require.Equal(t, int64(2), rows)
}

func TestTransferRequiresBothParties(t *testing.T) {
	journal, _ := newTestJournal(t)
	ctx := context.Background()

	err := journal.Transfer(ctx, 0, "owner-1", "", 20, models.TransferKindOwnerRefund)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeSettlementFailed))

	err = journal.Transfer(ctx, 0, "", "guest-1", 20, models.TransferKindBookingPayment)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeSettlementFailed))
}

func TestTransferRejectsNegativeAmount(t *testing.T) {
	journal, _ := newTestJournal(t)

	err := journal.Transfer(context.Background(), 0, "a", "b", -1, models.TransferKindBookingPayment)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeSettlementFailed))
}

func TestTransferZeroAmountIsNoOp(t *testing.T) {
	journal, conn := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, journal.Transfer(ctx, 0, "a", "b", 0, models.TransferKindBookingPayment))

	var rows int64
	require.NoError(t, conn.Model(&models.Transfer{}).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestBalanceUnknownIdentityIsZero(t *testing.T) {
	journal, _ := newTestJournal(t)

	balance, err := journal.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	require.Zero(t, balance)
}
