package rent

import (
	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
)

// Gate holds the identity predicates guarding every mutating entry point.
// The administrator is fixed at construction and never changes.
type Gate struct {
	admin string
}

// NewGate builds a permission gate for the configured administrator.
func NewGate(adminIdentity string) Gate {
	return Gate{admin: adminIdentity}
}

// IsAdmin reports whether the identity is the ledger administrator.
func (g Gate) IsAdmin(identity string) bool {
	return identity != "" && identity == g.admin
}

// RequireOwner fails unless the caller owns the record.
func RequireOwner(p models.Property, identity string) error {
	if p.OwnerIdentity != identity {
		return pkgerrors.New(pkgerrors.CodeNotOwner, "caller does not own this property")
	}
	return nil
}

// RequireGuest fails unless the caller is the record's current guest. An
// unbooked record has no guest, so every caller fails.
func RequireGuest(p models.Property, identity string) error {
	if identity == models.IdentityNone || p.GuestIdentity != identity {
		return pkgerrors.New(pkgerrors.CodeNotGuest, "caller is not the current guest")
	}
	return nil
}
