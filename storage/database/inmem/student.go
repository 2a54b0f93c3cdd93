package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/student"
)

type studentRepository struct {
	db       *DB
	accounts *accountRepository
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db, accounts: &accountRepository{db: db}}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, acct account.Account, st student.Student) (account.Account, student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	acct, err := repo.accounts.create(acct)
	if err != nil {
		return account.Account{}, student.Student{}, err
	}
	st.ID = uuid.New().String()
	st.AccountID = acct.ID
	repo.db.students[st.ID] = &st
	return acct, st, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByAccountID(ctx context.Context, accountID string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, st := range repo.db.students {
		if st.AccountID == accountID {
			return *st, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudentsByTenant(ctx context.Context, tenantID string) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, st := range repo.db.students {
		if st.TenantID == tenantID {
			students = append(students, *st)
		}
	}
	return students, nil
}

func (repo *studentRepository) ArchiveStudent(ctx context.Context, id string, archived bool) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	st, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	st.IsArchived = archived
	return *st, nil
}
