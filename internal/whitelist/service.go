package whitelist

import (
	"context"
	"strings"

	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
)

// AdminChecker answers whether an identity is the ledger administrator.
type AdminChecker interface {
	IsAdmin(identity string) bool
}

// Service guards whitelist mutation behind the admin identity.
type Service interface {
	Add(ctx context.Context, caller, identity string) error
	Contains(ctx context.Context, identity string) (bool, error)
}

type service struct {
	repo  Repository
	admin AdminChecker
}

// ServiceParams groups dependencies for the whitelist service.
type ServiceParams struct {
	Repo  Repository
	Admin AdminChecker
}

// NewService wires a whitelist service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "whitelist repository required")
	}
	if params.Admin == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin checker required")
	}
	return &service{repo: params.Repo, admin: params.Admin}, nil
}

// Add whitelists an identity for booking. Only the configured administrator
// may call it.
func (s *service) Add(ctx context.Context, caller, identity string) error {
	if !s.admin.IsAdmin(caller) {
		return pkgerrors.New(pkgerrors.CodeNotAdmin, "only the administrator may modify the whitelist")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "identity is required")
	}
	if err := s.repo.Add(ctx, identity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add whitelist entry")
	}
	return nil
}

func (s *service) Contains(ctx context.Context, identity string) (bool, error) {
	ok, err := s.repo.Contains(ctx, identity)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check whitelist")
	}
	return ok, nil
}
