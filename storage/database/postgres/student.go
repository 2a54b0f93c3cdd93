package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/student"
)

type studentRow struct {
	ID              string      `db:"id"`
	AccountID       string      `db:"account_id"`
	TenantID        string      `db:"tenant_id"`
	FirstName       string      `db:"first_name"`
	MiddleName      null.String `db:"middle_name"`
	LastName        string      `db:"last_name"`
	Extension       null.String `db:"extension"`
	Sex             string      `db:"sex"`
	Gender          null.String `db:"gender"`
	Birthday        string      `db:"birthday"`
	LRN             string      `db:"lrn"`
	InterestingFact null.String `db:"interesting_fact"`

	GuardianFirstName    string      `db:"guardian_first_name"`
	GuardianMiddleName   null.String `db:"guardian_middle_name"`
	GuardianLastName     string      `db:"guardian_last_name"`
	GuardianExtension    null.String `db:"guardian_extension"`
	GuardianRelationship string      `db:"guardian_relationship"`
	GuardianNumber       string      `db:"guardian_number"`

	IsArchived bool      `db:"is_archived"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r studentRow) toModel() student.Student {
	return student.Student{
		ID:              r.ID,
		AccountID:       r.AccountID,
		TenantID:        r.TenantID,
		FirstName:       r.FirstName,
		MiddleName:      r.MiddleName.String,
		LastName:        r.LastName,
		Extension:       r.Extension.String,
		Sex:             r.Sex,
		Gender:          r.Gender.String,
		Birthday:        r.Birthday,
		LRN:             r.LRN,
		InterestingFact: r.InterestingFact.String,
		Guardian: student.Guardian{
			FirstName:    r.GuardianFirstName,
			MiddleName:   r.GuardianMiddleName.String,
			LastName:     r.GuardianLastName,
			Extension:    r.GuardianExtension.String,
			Relationship: r.GuardianRelationship,
			Number:       r.GuardianNumber,
		},
		IsArchived: r.IsArchived,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// CreateStudent inserts the account and its profile in one transaction so a
// failed profile insert never leaves an orphaned account usable for login.
func (repo *studentRepository) CreateStudent(ctx context.Context, acct account.Account, st student.Student) (account.Account, student.Student, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return account.Account{}, student.Student{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if acct, err = insertAccount(ctx, tx, acct); err != nil {
		return account.Account{}, student.Student{}, err
	}

	st.ID = uuid.New().String()
	st.AccountID = acct.ID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO student (
			id, account_id, tenant_id, first_name, middle_name, last_name, extension,
			sex, gender, birthday, lrn, interesting_fact,
			guardian_first_name, guardian_middle_name, guardian_last_name,
			guardian_extension, guardian_relationship, guardian_number,
			is_archived, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		st.ID, st.AccountID, st.TenantID,
		st.FirstName, null.NewString(st.MiddleName, st.MiddleName != ""),
		st.LastName, null.NewString(st.Extension, st.Extension != ""),
		st.Sex, null.NewString(st.Gender, st.Gender != ""),
		st.Birthday, st.LRN, null.NewString(st.InterestingFact, st.InterestingFact != ""),
		st.Guardian.FirstName, null.NewString(st.Guardian.MiddleName, st.Guardian.MiddleName != ""),
		st.Guardian.LastName, null.NewString(st.Guardian.Extension, st.Guardian.Extension != ""),
		st.Guardian.Relationship, st.Guardian.Number,
		st.IsArchived, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		return account.Account{}, student.Student{}, errors.Wrap(err, "inserting student profile")
	}

	if err = tx.Commit(); err != nil {
		return account.Account{}, student.Student{}, errors.Wrap(err, "committing transaction")
	}
	return acct, st, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id)
	if err != nil {
		return student.Student{}, trapNoRows(err, student.ErrNotFound, "getting student by id")
	}
	return row.toModel(), nil
}

func (repo *studentRepository) GetStudentByAccountID(ctx context.Context, accountID string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE account_id = $1`, accountID)
	if err != nil {
		return student.Student{}, trapNoRows(err, student.ErrNotFound, "getting student by account id")
	}
	return row.toModel(), nil
}

func (repo *studentRepository) QueryStudentsByTenant(ctx context.Context, tenantID string) ([]student.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM student WHERE tenant_id = $1 ORDER BY last_name, first_name`, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students, nil
}

func (repo *studentRepository) ArchiveStudent(ctx context.Context, id string, archived bool) (student.Student, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE student SET is_archived = $2, updated_at = $3 WHERE id = $1`,
		id, archived, time.Now().UTC())
	if err != nil {
		return student.Student{}, errors.Wrap(err, "archiving student")
	}
	return repo.GetStudentByID(ctx, id)
}
