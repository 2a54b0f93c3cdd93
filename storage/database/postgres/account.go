package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/account"
)

type accountRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r accountRow) toModel() account.Account {
	return account.Account{
		ID:           r.ID,
		Email:        r.Email,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{db: db}
}

const insertAccountQuery = `
	INSERT INTO account (id, email, role, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// insertAccount runs on any executor so registration can share a transaction.
func insertAccount(ctx context.Context, exec sqlx.ExecerContext, acct account.Account) (account.Account, error) {
	acct.ID = uuid.New().String()
	_, err := exec.ExecContext(ctx, insertAccountQuery,
		acct.ID, acct.Email, acct.Role, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrEmailExists
		}
		return account.Account{}, errors.Wrap(err, "inserting account")
	}
	return acct, nil
}

func (repo *accountRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...account.Account) error {
	query := `SELECT EXISTS (SELECT 1 FROM account WHERE email = $1`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, a := range excluded {
			ids = append(ids, a.ID)
		}
		query += ` AND id != ALL($2)`
		args = append(args, pq.Array(ids))
	}
	query += `)`

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return account.ErrEmailExists
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	return insertAccount(ctx, repo.db, acct)
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	var row accountRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM account WHERE id = $1`, id)
	if err != nil {
		return account.Account{}, trapNoRows(err, account.ErrNotFound, "getting account by id")
	}
	return row.toModel(), nil
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	var row accountRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM account WHERE email = $1`, email)
	if err != nil {
		return account.Account{}, trapNoRows(err, account.ErrNotFound, "getting account by email")
	}
	return row.toModel(), nil
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	var rows []accountRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM account ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	accts := make([]account.Account, 0, len(rows))
	for _, row := range rows {
		accts = append(accts, row.toModel())
	}
	return accts, nil
}

func (repo *accountRepository) UpdateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE account SET role = $2, password_hash = $3, updated_at = $4 WHERE id = $1`,
		acct.ID, acct.Role, acct.PasswordHash, acct.UpdatedAt)
	if err != nil {
		return account.Account{}, errors.Wrap(err, "updating account")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.Account{}, account.ErrNotFound
	}
	return acct, nil
}

func (repo *accountRepository) UpdateOrCreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	if acct.ID != "" {
		return repo.UpdateAccount(ctx, acct)
	}
	existing, err := repo.GetAccountByEmail(ctx, acct.Email)
	if err == nil {
		acct.ID = existing.ID
		acct.CreatedAt = existing.CreatedAt
		return repo.UpdateAccount(ctx, acct)
	}
	if errors.Cause(err) != account.ErrNotFound {
		return account.Account{}, err
	}
	return repo.CreateAccount(ctx, acct)
}
