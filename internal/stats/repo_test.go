package stats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	dsn := "file:stats_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.StatisticRecord{}))
	return NewRepository(conn)
}

func TestRecordBookingAccumulates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.RecordBooking(ctx, "owner-1", "guest-1", 2, 20))
	require.NoError(t, repo.RecordBooking(ctx, "owner-1", "guest-1", 3, 30))

	owner, err := repo.Get(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, int64(50), owner.TotalEarnedCents)
	require.Equal(t, int64(5), owner.DaysBookedAsOwner)
	require.Equal(t, int64(2), owner.TimesBookedAsOwner)
	require.Zero(t, owner.TotalSpentCents)
	require.Zero(t, owner.TimesBookedAsGuest)

	guest, err := repo.Get(ctx, "guest-1")
	require.NoError(t, err)
	require.Equal(t, int64(50), guest.TotalSpentCents)
	require.Equal(t, int64(5), guest.DaysBookedAsGuest)
	require.Equal(t, int64(2), guest.TimesBookedAsGuest)
	require.Zero(t, guest.TotalEarnedCents)
}

func TestRecordBookingTracksBothRoles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// The same identity can earn as owner and spend as guest.
	require.NoError(t, repo.RecordBooking(ctx, "alice", "bob", 1, 10))
	require.NoError(t, repo.RecordBooking(ctx, "bob", "alice", 2, 14))

	alice, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(10), alice.TotalEarnedCents)
	require.Equal(t, int64(14), alice.TotalSpentCents)
	require.Equal(t, int64(1), alice.DaysBookedAsOwner)
	require.Equal(t, int64(2), alice.DaysBookedAsGuest)
}

func TestGetUnknownIdentityReadsZero(t *testing.T) {
	repo := newTestRepo(t)

	record, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.Equal(t, "nobody", record.Identity)
	require.Zero(t, record.TotalEarnedCents)
	require.Zero(t, record.TotalSpentCents)
	require.Zero(t, record.TimesBookedAsOwner)
	require.Zero(t, record.TimesBookedAsGuest)
}
