package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/tenant"
)

type tenantRepository struct {
	db *DB
}

func NewTenantRepository(db *DB) tenant.Repository {
	return &tenantRepository{db: db}
}

func (repo *tenantRepository) CreateTenant(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t.ID = uuid.New().String()
	repo.db.tenants[t.ID] = &t
	return t, nil
}

func (repo *tenantRepository) GetTenantByID(ctx context.Context, id string) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tenants[id]; ok {
		return *t, nil
	}
	return tenant.Tenant{}, tenant.ErrNotFound
}

func (repo *tenantRepository) GetDefaultTenant(ctx context.Context) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var oldest *tenant.Tenant
	for _, t := range repo.db.tenants {
		if oldest == nil || t.CreatedAt.Before(oldest.CreatedAt) {
			oldest = t
		}
	}
	if oldest == nil {
		return tenant.Tenant{}, tenant.ErrNotFound
	}
	return *oldest, nil
}

func (repo *tenantRepository) QueryAllTenants(ctx context.Context) ([]tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tenants := make([]tenant.Tenant, 0, len(repo.db.tenants))
	for _, t := range repo.db.tenants {
		tenants = append(tenants, *t)
	}
	return tenants, nil
}
