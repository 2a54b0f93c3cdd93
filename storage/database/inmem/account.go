package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/account"
)

type accountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) query() []account.Account {
	accounts := make([]account.Account, 0, len(repo.db.accounts))
	for _, acct := range repo.db.accounts {
		accounts = append(accounts, *acct)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].CreatedAt.Before(accounts[j].CreatedAt) })
	return accounts
}

func (repo *accountRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...account.Account) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, acct := range repo.db.accounts {
		if acct.Email != email {
			continue
		}
		if isExcluded(*acct, excluded) {
			continue
		}
		return account.ErrEmailExists
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.create(acct)
}

// create assumes the caller holds the write lock.
func (repo *accountRepository) create(acct account.Account) (account.Account, error) {
	for _, existing := range repo.db.accounts {
		if existing.Email == acct.Email {
			return account.Account{}, account.ErrEmailExists
		}
	}
	acct.ID = uuid.New().String()
	repo.db.accounts[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if acct, ok := repo.db.accounts[id]; ok {
		return *acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, acct := range repo.db.accounts {
		if acct.Email == email {
			return *acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *accountRepository) UpdateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.accounts[acct.ID]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	if acct.PasswordHash != nil {
		orig.PasswordHash = acct.PasswordHash
	}
	if acct.Role != "" {
		orig.Role = acct.Role
	}
	orig.UpdatedAt = acct.UpdatedAt
	return *orig, nil
}

func (repo *accountRepository) UpdateOrCreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.accounts {
		if existing.Email == acct.Email {
			existing.Role = acct.Role
			if acct.PasswordHash != nil {
				existing.PasswordHash = acct.PasswordHash
			}
			existing.UpdatedAt = acct.UpdatedAt
			return *existing, nil
		}
	}
	return repo.create(acct)
}

func isExcluded(acct account.Account, excluded []account.Account) bool {
	for _, ex := range excluded {
		if ex.ID == acct.ID {
			return true
		}
	}
	return false
}
