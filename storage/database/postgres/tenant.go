package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/tenant"
)

type tenantRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Theme     string    `db:"theme"`
	CreatedAt time.Time `db:"created_at"`
}

func (r tenantRow) toModel() tenant.Tenant {
	return tenant.Tenant{ID: r.ID, Name: r.Name, Theme: r.Theme, CreatedAt: r.CreatedAt}
}

type tenantRepository struct {
	db *sqlx.DB
}

var _ tenant.Repository = (*tenantRepository)(nil)

func NewTenantRepository(db *sqlx.DB) *tenantRepository {
	return &tenantRepository{db: db}
}

func (repo *tenantRepository) CreateTenant(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	t.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO tenant (id, name, theme, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Theme, t.CreatedAt)
	if err != nil {
		return tenant.Tenant{}, errors.Wrap(err, "inserting tenant")
	}
	return t, nil
}

func (repo *tenantRepository) GetTenantByID(ctx context.Context, id string) (tenant.Tenant, error) {
	var row tenantRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM tenant WHERE id = $1`, id)
	if err != nil {
		return tenant.Tenant{}, trapNoRows(err, tenant.ErrNotFound, "getting tenant by id")
	}
	return row.toModel(), nil
}

func (repo *tenantRepository) GetDefaultTenant(ctx context.Context) (tenant.Tenant, error) {
	var row tenantRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM tenant ORDER BY created_at LIMIT 1`)
	if err != nil {
		return tenant.Tenant{}, trapNoRows(err, tenant.ErrNotFound, "getting default tenant")
	}
	return row.toModel(), nil
}

func (repo *tenantRepository) QueryAllTenants(ctx context.Context) ([]tenant.Tenant, error) {
	var rows []tenantRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM tenant ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tenants")
	}
	tenants := make([]tenant.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, row.toModel())
	}
	return tenants, nil
}
