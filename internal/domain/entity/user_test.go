package entity

import (
	"sync"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	user := NewUser("alice", "digest", "Alice", "Smith", fixedTime)

	assert.Equal(t, "alice", user.Username())
	assert.Equal(t, "digest", user.PasswordDigest())
	assert.Equal(t, "Alice Smith", user.FullName())
	assert.True(t, user.Balance().IsZero())
	assert.Equal(t, "0", user.GetBalance())
	assert.Empty(t, user.History())
	assert.Equal(t, 0, user.TransactionCount())
	assert.Equal(t, fixedTime, user.CreatedAt)
}

func TestApplyDeposit(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("alice", "digest", "Alice", "Smith", fixedTime)

	txn, err := user.ApplyDeposit(amount("100.00"), fixedTime)

	require.NoError(t, err)
	assert.Equal(t, "100.00", user.GetBalance())
	assert.Equal(t, "100.00", txn.FormattedAmount())
	assert.Equal(t, "100.00", txn.FormattedBalance())
	assert.Equal(t, DescriptionDeposit, txn.Description)
	assert.Equal(t, fixedTime, txn.Timestamp)
	require.Len(t, user.History(), 1)
	assert.Equal(t, txn, user.History()[0])
}

func TestApplyDepositOverflow(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("alice", "digest", "Alice", "Smith", fixedTime)

	t.Run("Filling to the maximum is allowed", func(t *testing.T) {
		_, err := user.ApplyDeposit(MaxBalance.Sub(amount("1")), fixedTime)
		require.NoError(t, err)

		_, err = user.ApplyDeposit(amount("1"), fixedTime)
		require.NoError(t, err)
		assert.True(t, user.Balance().Equal(MaxBalance))
	})

	t.Run("Exceeding the maximum is rejected", func(t *testing.T) {
		_, err := user.ApplyDeposit(amount("0.01"), fixedTime)

		assert.ErrorIs(t, err, errs.ErrOverflow)
		assert.True(t, user.Balance().Equal(MaxBalance))
		assert.Equal(t, 2, user.TransactionCount())
	})
}

func TestApplyWithdraw(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("bob", "digest", "Bob", "Jones", fixedTime)
	_, err := user.ApplyDeposit(amount("100.00"), fixedTime)
	require.NoError(t, err)

	t.Run("Valid withdrawal", func(t *testing.T) {
		txn, err := user.ApplyWithdraw(amount("30.00"), fixedTime)

		require.NoError(t, err)
		assert.Equal(t, "70.00", user.GetBalance())
		assert.Equal(t, "-30.00", txn.FormattedAmount())
		assert.Equal(t, "70.00", txn.FormattedBalance())
		assert.Equal(t, DescriptionWithdraw, txn.Description)
	})

	t.Run("Exact balance withdrawal", func(t *testing.T) {
		_, err := user.ApplyWithdraw(amount("70.00"), fixedTime)

		require.NoError(t, err)
		assert.True(t, user.Balance().IsZero())
		assert.Equal(t, 3, user.TransactionCount())
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := user.ApplyWithdraw(amount("0.01"), fixedTime)
			assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		}

		assert.True(t, user.Balance().IsZero())
		assert.Equal(t, 3, user.TransactionCount())
	})
}

func TestHistoryIsACopy(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("carol", "digest", "Carol", "White", fixedTime)
	_, err := user.ApplyDeposit(amount("10"), fixedTime)
	require.NoError(t, err)

	history := user.History()
	history[0].Amount = amount("999")

	assert.Equal(t, "10", user.History()[0].FormattedAmount())
}

func TestConcurrentDepositsKeepRunningSum(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	user := NewUser("dave", "digest", "Dave", "Brown", fixedTime)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = user.ApplyDeposit(amount("1.25"), fixedTime)
		}()
	}
	wg.Wait()

	history := user.History()
	require.Len(t, history, 50)

	sum := decimal.Zero
	for _, txn := range history {
		sum = sum.Add(txn.Amount)
		assert.True(t, txn.ResultingBalance.Equal(sum))
	}
	assert.True(t, user.Balance().Equal(amount("62.50")))
}
