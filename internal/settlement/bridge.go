package settlement

import (
	"context"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Bridge moves value between identities on behalf of the ledger. The ledger
// decides amounts; the bridge performs the transfer. A failed transfer must
// abort the operation that requested it, so implementations are expected to
// run inside the caller's transaction via WithTx.
type Bridge interface {
	WithTx(tx *gorm.DB) Bridge
	Transfer(ctx context.Context, propertyID int64, from, to string, amountCents int64, kind models.TransferKind) error
}
