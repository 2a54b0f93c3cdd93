package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/teacher"
)

type teacherRepository struct {
	db       *DB
	accounts *accountRepository
}

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db, accounts: &accountRepository{db: db}}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, acct account.Account, tch teacher.Teacher) (account.Account, teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	acct, err := repo.accounts.create(acct)
	if err != nil {
		return account.Account{}, teacher.Teacher{}, err
	}
	tch.ID = uuid.New().String()
	tch.AccountID = acct.ID
	repo.db.teachers[tch.ID] = &tch
	return acct, tch, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tch, ok := repo.db.teachers[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByAccountID(ctx context.Context, accountID string) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, tch := range repo.db.teachers {
		if tch.AccountID == accountID {
			return *tch, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) QueryTeachersByTenant(ctx context.Context, tenantID string) ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]teacher.Teacher, 0)
	for _, tch := range repo.db.teachers {
		if tch.TenantID == tenantID {
			teachers = append(teachers, *tch)
		}
	}
	return teachers, nil
}
