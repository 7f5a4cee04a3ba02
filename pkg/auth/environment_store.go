package auth

import (
	"os"
	"time"

	"igprofile/pkg/config"
)

// EnvironmentStore reads the cookie from INSTAGRAM_COOKIE.
// It is read-only and exposes the variable as the default account.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Cookie returns the current value of INSTAGRAM_COOKIE, possibly empty
func (e *EnvironmentStore) Cookie() (string, error) {
	return os.Getenv(config.CookieEnvVar), nil
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment cookie as the default account
func (e *EnvironmentStore) Retrieve(name string) (*Account, error) {
	if name != DefaultAccountName {
		return nil, ErrCredentialsNotFound
	}

	cookie, _ := e.Cookie()
	if cookie == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Account{
		Name:   DefaultAccountName,
		Cookie: cookie,
		// Zero time keeps stored copies of "default" preferred in Manager.List
		LastModified: time.Time{},
	}, nil
}

// List returns a single account if the variable is set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve(DefaultAccountName)
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment cookie is set
func (e *EnvironmentStore) Exists(name string) bool {
	return name == DefaultAccountName && os.Getenv(config.CookieEnvVar) != ""
}
