package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/teacher"
)

type teacherRow struct {
	ID         string      `db:"id"`
	AccountID  string      `db:"account_id"`
	TenantID   string      `db:"tenant_id"`
	FirstName  string      `db:"first_name"`
	MiddleName null.String `db:"middle_name"`
	LastName   string      `db:"last_name"`
	Extension  null.String `db:"extension"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (r teacherRow) toModel() teacher.Teacher {
	return teacher.Teacher{
		ID:         r.ID,
		AccountID:  r.AccountID,
		TenantID:   r.TenantID,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName.String,
		LastName:   r.LastName,
		Extension:  r.Extension.String,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

// CreateTeacher inserts the account and its profile in one transaction so a
// failed profile insert never leaves an orphaned account usable for login.
func (repo *teacherRepository) CreateTeacher(ctx context.Context, acct account.Account, tch teacher.Teacher) (account.Account, teacher.Teacher, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return account.Account{}, teacher.Teacher{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if acct, err = insertAccount(ctx, tx, acct); err != nil {
		return account.Account{}, teacher.Teacher{}, err
	}

	tch.ID = uuid.New().String()
	tch.AccountID = acct.ID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO teacher (id, account_id, tenant_id, first_name, middle_name, last_name, extension, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tch.ID, tch.AccountID, tch.TenantID,
		tch.FirstName, null.NewString(tch.MiddleName, tch.MiddleName != ""),
		tch.LastName, null.NewString(tch.Extension, tch.Extension != ""),
		tch.CreatedAt, tch.UpdatedAt)
	if err != nil {
		return account.Account{}, teacher.Teacher{}, errors.Wrap(err, "inserting teacher profile")
	}

	if err = tx.Commit(); err != nil {
		return account.Account{}, teacher.Teacher{}, errors.Wrap(err, "committing transaction")
	}
	return acct, tch, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	var row teacherRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM teacher WHERE id = $1`, id)
	if err != nil {
		return teacher.Teacher{}, trapNoRows(err, teacher.ErrNotFound, "getting teacher by id")
	}
	return row.toModel(), nil
}

func (repo *teacherRepository) GetTeacherByAccountID(ctx context.Context, accountID string) (teacher.Teacher, error) {
	var row teacherRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM teacher WHERE account_id = $1`, accountID)
	if err != nil {
		return teacher.Teacher{}, trapNoRows(err, teacher.ErrNotFound, "getting teacher by account id")
	}
	return row.toModel(), nil
}

func (repo *teacherRepository) QueryTeachersByTenant(ctx context.Context, tenantID string) ([]teacher.Teacher, error) {
	var rows []teacherRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM teacher WHERE tenant_id = $1 ORDER BY last_name, first_name`, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.toModel())
	}
	return teachers, nil
}
