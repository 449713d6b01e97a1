package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-labs/storefront/internal/config"
)

// ErrInvalidCredentials is returned when a demo account password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is a preconfigured login whose password is kept only as a bcrypt hash.
type Account struct {
	Username string
	Roles    []string
	hash     []byte
}

// Directory holds the demo accounts of the mocked login.
type Directory struct {
	accounts map[string]Account
}

// NewDirectory hashes the configured demo passwords.
func NewDirectory(accounts []config.DemoAccount, cost int) (*Directory, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	dir := &Directory{accounts: make(map[string]Account, len(accounts))}
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", acc.Username, err)
		}
		dir.accounts[acc.Username] = Account{
			Username: acc.Username,
			Roles:    append([]string(nil), acc.Roles...),
			hash:     hash,
		}
	}
	return dir, nil
}

// Authenticate checks a demo account. known is false when username is not a
// demo account, in which case no password check happens.
func (d *Directory) Authenticate(username, password string) (account Account, known bool, err error) {
	acc, ok := d.accounts[username]
	if !ok {
		return Account{}, false, nil
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return Account{}, true, ErrInvalidCredentials
	}
	return acc, true, nil
}

// Has reports whether username belongs to a demo account.
func (d *Directory) Has(username string) bool {
	_, ok := d.accounts[username]
	return ok
}
