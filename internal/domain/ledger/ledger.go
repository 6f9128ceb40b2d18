// Package ledger owns the user registry and every rule about accounts and
// money movement. It performs no input normalization: callers pass usernames
// already trimmed and lowercased.
package ledger

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
)

// dummyPassword is hashed once so logins for unknown users still pay for a digest comparison
const dummyPassword = "command-line-bank/no-such-user"

// Ledger is the single source of truth for users, balances and history
type Ledger struct {
	hasher       coreport.PasswordHasher
	timeProvider coreport.TimeProvider
	dummyDigest  string

	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewLedger creates an empty ledger
func NewLedger(hasher coreport.PasswordHasher, timeProvider coreport.TimeProvider) (*Ledger, error) {
	if hasher == nil {
		return nil, fmt.Errorf("ledger: password hasher is required")
	}
	if timeProvider == nil {
		return nil, fmt.Errorf("ledger: time provider is required")
	}

	dummyDigest, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("ledger: prepare dummy digest: %w", err)
	}

	return &Ledger{
		hasher:       hasher,
		timeProvider: timeProvider,
		dummyDigest:  dummyDigest,
		users:        make(map[string]*entity.User),
	}, nil
}

// UserExists reports whether username is registered
func (l *Ledger) UserExists(username string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.users[username]
	return ok
}

// IsUsernameValid reports whether username is syntactically acceptable
func (l *Ledger) IsUsernameValid(username string) bool {
	return IsUsernameValid(username)
}

// IsUsernameValid reports whether username is non-empty, starts with a letter
// and contains only letters and digits
func IsUsernameValid(username string) bool {
	if username == "" {
		return false
	}

	for i, r := range username {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Count returns the number of registered users
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.users)
}

// CreateAccount registers a new user with a zero balance.
// Existence and validity are decided together under the registry lock, and
// the password is hashed only once both checks pass.
func (l *Ledger) CreateAccount(username, password, firstName, lastName string) (*entity.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.users[username]; taken {
		return nil, errs.ErrUsernameTaken
	}
	if !IsUsernameValid(username) {
		return nil, errs.ErrInvalidUsername
	}

	digest, err := l.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entity.NewUser(username, digest, firstName, lastName, l.timeProvider.Now())
	l.users[username] = user
	return user, nil
}

// Login returns the user when username exists and password matches its digest.
// Unknown users and wrong passwords produce the same false result.
func (l *Ledger) Login(username, password string) (*entity.User, bool) {
	l.mu.RLock()
	user, ok := l.users[username]
	l.mu.RUnlock()

	if !ok {
		l.hasher.Check(password, l.dummyDigest)
		return nil, false
	}

	if !l.hasher.Check(password, user.PasswordDigest()) {
		return nil, false
	}
	return user, true
}

// Deposit parses amountText and adds it to the user's balance
func (l *Ledger) Deposit(user *entity.User, amountText string) (entity.Transaction, error) {
	l.mustBeRegistered(user)

	amount, err := parsePositiveAmount(amountText)
	if err != nil {
		return entity.Transaction{}, err
	}

	return user.ApplyDeposit(amount, l.timeProvider.Now())
}

// Withdraw parses amountText and subtracts it from the user's balance
func (l *Ledger) Withdraw(user *entity.User, amountText string) (entity.Transaction, error) {
	l.mustBeRegistered(user)

	amount, err := parsePositiveAmount(amountText)
	if err != nil {
		return entity.Transaction{}, err
	}

	return user.ApplyWithdraw(amount, l.timeProvider.Now())
}

// mustBeRegistered panics when user is not the registered instance for its username
func (l *Ledger) mustBeRegistered(user *entity.User) {
	if user == nil {
		panic("ledger: nil user")
	}

	l.mu.RLock()
	registered := l.users[user.Username()]
	l.mu.RUnlock()

	if registered != user {
		panic(fmt.Sprintf("ledger: user %q is not registered with this ledger", user.Username()))
	}
}
