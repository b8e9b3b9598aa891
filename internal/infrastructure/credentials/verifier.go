// Package credentials checks usernames and passwords against bcrypt hashes and
// issues session tokens for verified users.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/model"
	"github.com/NimalpudiAshrita/smartloan/pkg/auth"
)

// Account is a stored user record.
type Account struct {
	Username     string
	DisplayName  string
	PasswordHash []byte
	Roles        []string
}

// Verifier is an in-memory port.CredentialVerifier.
type Verifier struct {
	accounts map[string]Account
	// dummyHash keeps the cost of a miss equal to the cost of a hit.
	dummyHash []byte
}

// NewVerifier indexes accounts by lower-cased username. The dummy hash used
// for unknown usernames is generated at the highest cost among the accounts.
func NewVerifier(accounts []Account) (*Verifier, error) {
	v := &Verifier{accounts: make(map[string]Account, len(accounts))}

	cost := bcrypt.MinCost
	for _, a := range accounts {
		key := normalize(a.Username)
		if key == "" {
			return nil, errors.New("account username is required")
		}
		if _, dup := v.accounts[key]; dup {
			return nil, fmt.Errorf("duplicate account %q", a.Username)
		}
		c, err := bcrypt.Cost(a.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Username, err)
		}
		cost = max(cost, c)
		v.accounts[key] = a
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("smartloan-dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	v.dummyHash = dummy
	return v, nil
}

// Verify returns the user for a matching username and password, or
// model.ErrInvalidCredentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (v *Verifier) Verify(_ context.Context, username, password string) (model.User, error) {
	account, ok := v.accounts[normalize(username)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
		return model.User{}, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return model.User{}, model.ErrInvalidCredentials
	}

	roles := make([]string, len(account.Roles))
	copy(roles, account.Roles)
	return model.User{
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Roles:       roles,
	}, nil
}

// NewAccount hashes password at the given bcrypt cost.
func NewAccount(username, displayName, password string, cost int, roles ...string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password for %q: %w", username, err)
	}
	return Account{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Roles:        roles,
	}, nil
}

// DemoAccounts returns the two built-in demo logins.
func DemoAccounts(cost int) ([]Account, error) {
	admin, err := NewAccount("admin", "SmartLoan Admin", "smartloan360", cost, auth.RoleAdmin, auth.RoleAnalyst)
	if err != nil {
		return nil, err
	}
	analyst, err := NewAccount("analyst", "Loan Analyst", "loanmarket123", cost, auth.RoleAnalyst)
	if err != nil {
		return nil, err
	}
	return []Account{admin, analyst}, nil
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
