package tenant

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("tenant not found")

type (
	Repository interface {
		CreateTenant(ctx context.Context, t Tenant) (Tenant, error)
		GetTenantByID(ctx context.Context, id string) (Tenant, error)
		// GetDefaultTenant returns the oldest tenant on record.
		GetDefaultTenant(ctx context.Context) (Tenant, error)
		QueryAllTenants(ctx context.Context) ([]Tenant, error)
	}

	Service interface {
		Create(ctx context.Context, nt NewTenant) (Tenant, error)
		GetByID(ctx context.Context, id string) (Tenant, error)
		GetDefault(ctx context.Context) (Tenant, error)
		QueryAll(ctx context.Context) ([]Tenant, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	t := Tenant{
		Name:      nt.Name,
		Theme:     nt.Theme,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateTenant(ctx, t)
}

func (svc *service) GetByID(ctx context.Context, id string) (Tenant, error) {
	return svc.repo.GetTenantByID(ctx, id)
}

func (svc *service) GetDefault(ctx context.Context) (Tenant, error) {
	return svc.repo.GetDefaultTenant(ctx)
}

func (svc *service) QueryAll(ctx context.Context) ([]Tenant, error) {
	return svc.repo.QueryAllTenants(ctx)
}
