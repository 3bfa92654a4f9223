package whitelist

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

type staticAdmin string

func (a staticAdmin) IsAdmin(identity string) bool {
	return identity != "" && identity == string(a)
}

func newTestService(t *testing.T) Service {
	t.Helper()

	dsn := "file:whitelist_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.WhitelistEntry{}))

	svc, err := NewService(ServiceParams{
		Repo:  NewRepository(conn),
		Admin: staticAdmin("admin-1"),
	})
	require.NoError(t, err)
	return svc
}

func TestAddRequiresAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Add(ctx, "guest-1", "guest-2")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAdmin))

	ok, err := svc.Contains(ctx, "guest-2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddIsAdditive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "admin-1", "guest-1"))
	require.NoError(t, svc.Add(ctx, "admin-1", "guest-1"))

	ok, err := svc.Contains(ctx, "guest-1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAddRejectsBlankIdentity(t *testing.T) {
	svc := newTestService(t)

	err := svc.Add(context.Background(), "admin-1", "   ")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestContainsUnknownIdentity(t *testing.T) {
	svc := newTestService(t)

	ok, err := svc.Contains(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, ok)
}
