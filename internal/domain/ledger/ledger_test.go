package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/amirhossein-jamali/command-line-bank/internal/infrastructure/adapter/hasher"
	coremocks "github.com/amirhossein-jamali/command-line-bank/mocks/port/core"
)

var fixedTime = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	l, err := NewLedger(hasher.NewSHA256Hasher(), mockTime)
	require.NoError(t, err)
	return l
}

func newAccount(t *testing.T, l *Ledger, username string) *entity.User {
	t.Helper()

	user, err := l.CreateAccount(username, "password1", "First", "Last")
	require.NoError(t, err)
	return user
}

func TestNewLedger(t *testing.T) {
	t.Run("Requires a hasher", func(t *testing.T) {
		_, err := NewLedger(nil, coremocks.NewMockTimeProvider(t))
		assert.Error(t, err)
	})

	t.Run("Requires a time provider", func(t *testing.T) {
		_, err := NewLedger(hasher.NewSHA256Hasher(), nil)
		assert.Error(t, err)
	})

	t.Run("Starts empty", func(t *testing.T) {
		l := newTestLedger(t)
		assert.Equal(t, 0, l.Count())
		assert.False(t, l.UserExists("alice"))
	})
}

func TestIsUsernameValid(t *testing.T) {
	testCases := []struct {
		username string
		expected bool
	}{
		{"bob1", true},
		{"1bob", false},
		{"", false},
		{"bob!", false},
		{"alice", true},
		{"a", true},
		{"bob smith", false},
		{"bob_1", false},
		{"émile2", true},
		{"ψ9", true},
		{"9", false},
	}

	l := newTestLedger(t)
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.username), func(t *testing.T) {
			assert.Equal(t, tc.expected, IsUsernameValid(tc.username))
			assert.Equal(t, tc.expected, l.IsUsernameValid(tc.username))
		})
	}
}

func TestCreateAccount(t *testing.T) {
	t.Run("Succeeds exactly once per username", func(t *testing.T) {
		l := newTestLedger(t)

		user, err := l.CreateAccount("alice", "password1", "Alice", "Smith")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username())
		assert.Equal(t, "Alice", user.FirstName)
		assert.Equal(t, "Smith", user.LastName)
		assert.True(t, user.Balance().IsZero())
		assert.Empty(t, user.History())
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.True(t, l.UserExists("alice"))
		assert.Equal(t, 1, l.Count())

		again, err := l.CreateAccount("alice", "other-password", "Other", "Person")
		assert.ErrorIs(t, err, errs.ErrUsernameTaken)
		assert.Nil(t, again)
		assert.Equal(t, 1, l.Count())
	})

	t.Run("Stores the SHA-256 digest", func(t *testing.T) {
		l := newTestLedger(t)

		user := newAccount(t, l, "bob")
		expected, _ := hasher.NewSHA256Hasher().Hash("password1")
		assert.Equal(t, expected, user.PasswordDigest())
	})

	t.Run("Rejects invalid usernames", func(t *testing.T) {
		l := newTestLedger(t)

		for _, username := range []string{"", "1bob", "bob!", "bob smith"} {
			user, err := l.CreateAccount(username, "password1", "Bob", "Jones")
			assert.ErrorIs(t, err, errs.ErrInvalidUsername)
			assert.Nil(t, user)
		}
		assert.Equal(t, 0, l.Count())
	})

	t.Run("Does not hash when rejecting", func(t *testing.T) {
		mockHasher := coremocks.NewMockPasswordHasher(t)
		mockHasher.On("Hash", dummyPassword).Return("dummy-digest", nil).Once()
		mockHasher.On("Hash", "password1").Return("digest", nil).Once()

		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(fixedTime).Maybe()

		l, err := NewLedger(mockHasher, mockTime)
		require.NoError(t, err)

		_, err = l.CreateAccount("carol", "password1", "Carol", "White")
		require.NoError(t, err)

		_, err = l.CreateAccount("carol", "password1", "Carol", "White")
		assert.ErrorIs(t, err, errs.ErrUsernameTaken)

		_, err = l.CreateAccount("1carol", "password1", "Carol", "White")
		assert.ErrorIs(t, err, errs.ErrInvalidUsername)
	})

	t.Run("Hasher failure creates nothing", func(t *testing.T) {
		hashErr := errors.New("password too long")

		mockHasher := coremocks.NewMockPasswordHasher(t)
		mockHasher.On("Hash", dummyPassword).Return("dummy-digest", nil).Once()
		mockHasher.On("Hash", "x").Return("", hashErr).Once()

		mockTime := coremocks.NewMockTimeProvider(t)

		l, err := NewLedger(mockHasher, mockTime)
		require.NoError(t, err)

		user, err := l.CreateAccount("dave", "x", "Dave", "Brown")
		assert.ErrorIs(t, err, hashErr)
		assert.Nil(t, user)
		assert.False(t, l.UserExists("dave"))
	})

	t.Run("Concurrent creation of one username admits a single winner", func(t *testing.T) {
		l := newTestLedger(t)

		var wg sync.WaitGroup
		var mu sync.Mutex
		successes, taken := 0, 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := l.CreateAccount("eve", "password1", "Eve", "Adams")
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					successes++
				} else if errors.Is(err, errs.ErrUsernameTaken) {
					taken++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, 19, taken)
	})
}

func TestLogin(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t, l, "alice")

	t.Run("Correct credentials", func(t *testing.T) {
		user, ok := l.Login("alice", "password1")
		assert.True(t, ok)
		assert.Same(t, alice, user)
	})

	t.Run("Wrong password", func(t *testing.T) {
		user, ok := l.Login("alice", "password2")
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("Unknown user is indistinguishable", func(t *testing.T) {
		user, ok := l.Login("mallory", "password1")
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("Username is not normalized", func(t *testing.T) {
		_, ok := l.Login("Alice", "password1")
		assert.False(t, ok)
	})
}

func TestLoginUnknownUserStillCompares(t *testing.T) {
	mockHasher := coremocks.NewMockPasswordHasher(t)
	mockHasher.On("Hash", dummyPassword).Return("dummy-digest", nil).Once()
	mockHasher.On("Check", "secret", "dummy-digest").Return(false).Once()

	l, err := NewLedger(mockHasher, coremocks.NewMockTimeProvider(t))
	require.NoError(t, err)

	user, ok := l.Login("nobody", "secret")
	assert.False(t, ok)
	assert.Nil(t, user)
	mockHasher.AssertCalled(t, "Check", "secret", "dummy-digest")
}

func TestDeposit(t *testing.T) {
	t.Run("Valid deposit", func(t *testing.T) {
		l := newTestLedger(t)
		user := newAccount(t, l, "alice")

		txn, err := l.Deposit(user, "100.00")

		require.NoError(t, err)
		assert.Equal(t, "100.00", user.GetBalance())
		assert.Equal(t, "100.00", txn.FormattedAmount())
		assert.Equal(t, "100.00", txn.FormattedBalance())
		assert.Equal(t, entity.DescriptionDeposit, txn.Description)
		assert.Equal(t, fixedTime, txn.Timestamp)
	})

	t.Run("Rejections leave no trace", func(t *testing.T) {
		testCases := []struct {
			amount   string
			expected error
		}{
			{"abc", errs.ErrNotANumber},
			{"", errs.ErrNotANumber},
			{"1e3", errs.ErrNotANumber},
			{"-5", errs.ErrNotPositive},
			{"0", errs.ErrNotPositive},
			{"0.00", errs.ErrNotPositive},
		}

		l := newTestLedger(t)
		user := newAccount(t, l, "bob")
		_, err := l.Deposit(user, "10")
		require.NoError(t, err)

		for _, tc := range testCases {
			t.Run(tc.amount, func(t *testing.T) {
				_, err := l.Deposit(user, tc.amount)
				assert.ErrorIs(t, err, tc.expected)
				assert.Equal(t, "10", user.GetBalance())
				assert.Equal(t, 1, user.TransactionCount())
			})
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		l := newTestLedger(t)
		user := newAccount(t, l, "carol")

		_, err := l.Deposit(user, entity.MaxBalance.String())
		require.NoError(t, err)

		_, err = l.Deposit(user, "1")
		assert.ErrorIs(t, err, errs.ErrOverflow)
		assert.True(t, user.Balance().Equal(entity.MaxBalance))
		assert.Equal(t, 1, user.TransactionCount())
	})

	t.Run("Unregistered user panics", func(t *testing.T) {
		l := newTestLedger(t)
		other := newTestLedger(t)
		stranger := newAccount(t, other, "stranger")

		assert.Panics(t, func() { _, _ = l.Deposit(stranger, "1") })
		assert.Panics(t, func() { _, _ = l.Deposit(nil, "1") })
	})
}

func TestWithdraw(t *testing.T) {
	l := newTestLedger(t)
	user := newAccount(t, l, "alice")
	_, err := l.Deposit(user, "50")
	require.NoError(t, err)

	t.Run("Amount validation", func(t *testing.T) {
		_, err := l.Withdraw(user, "abc")
		assert.ErrorIs(t, err, errs.ErrNotANumber)

		_, err = l.Withdraw(user, "-5")
		assert.ErrorIs(t, err, errs.ErrNotPositive)

		_, err = l.Withdraw(user, "0")
		assert.ErrorIs(t, err, errs.ErrNotPositive)
	})

	t.Run("Failed withdrawals are idempotent", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := l.Withdraw(user, "50.01")
			assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		}
		assert.Equal(t, "50", user.GetBalance())
		assert.Equal(t, 1, user.TransactionCount())
	})

	t.Run("Withdrawing everything", func(t *testing.T) {
		txn, err := l.Withdraw(user, "50")
		require.NoError(t, err)
		assert.Equal(t, "-50", txn.FormattedAmount())
		assert.True(t, user.Balance().IsZero())
		assert.Equal(t, entity.DescriptionWithdraw, txn.Description)
	})
}

func TestRunningSumInvariant(t *testing.T) {
	l := newTestLedger(t)
	user := newAccount(t, l, "alice")

	operations := []struct {
		deposit bool
		amount  string
	}{
		{true, "100.00"},
		{false, "30.00"},
		{false, "80.00"},
		{true, "0.05"},
		{false, "70.05"},
		{false, "0.01"},
		{true, "12.345"},
		{false, "2.345"},
	}

	for _, op := range operations {
		if op.deposit {
			_, _ = l.Deposit(user, op.amount)
		} else {
			_, _ = l.Withdraw(user, op.amount)
		}

		sum := decimal.Zero
		for _, txn := range user.History() {
			sum = sum.Add(txn.Amount)
			assert.True(t, txn.ResultingBalance.Equal(sum))
			assert.False(t, txn.ResultingBalance.IsNegative())
		}
		assert.True(t, user.Balance().Equal(sum))
		assert.False(t, user.Balance().IsNegative())
	}

	assert.Equal(t, "10.000", user.GetBalance())
	assert.Len(t, user.History(), 6)
}

func TestEndToEndScenario(t *testing.T) {
	l := newTestLedger(t)

	alice, err := l.CreateAccount("alice", "password1", "Alice", "Smith")
	require.NoError(t, err)
	assert.True(t, alice.Balance().IsZero())

	_, err = l.Deposit(alice, "100.00")
	require.NoError(t, err)
	assert.Equal(t, "100.00", alice.GetBalance())
	history := alice.History()
	require.Len(t, history, 1)
	assert.Equal(t, "100.00", history[0].FormattedAmount())
	assert.Equal(t, "100.00", history[0].FormattedBalance())
	assert.Equal(t, entity.DescriptionDeposit, history[0].Description)

	_, err = l.Withdraw(alice, "30.00")
	require.NoError(t, err)
	assert.Equal(t, "70.00", alice.GetBalance())
	history = alice.History()
	require.Len(t, history, 2)
	assert.Equal(t, "-30.00", history[1].FormattedAmount())
	assert.Equal(t, "70.00", history[1].FormattedBalance())
	assert.Equal(t, entity.DescriptionWithdraw, history[1].Description)

	_, err = l.Withdraw(alice, "1000.00")
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.Equal(t, "70.00", alice.GetBalance())
	assert.Len(t, alice.History(), 2)

	user, ok := l.Login("alice", "password1")
	require.True(t, ok)
	assert.Same(t, alice, user)
}
