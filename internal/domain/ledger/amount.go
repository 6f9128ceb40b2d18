package ledger

import (
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/shopspring/decimal"
)

// parsePositiveAmount applies the parse and positivity checks shared by deposit and withdraw
func parsePositiveAmount(amountText string) (decimal.Decimal, error) {
	amount, err := entity.ParseAmount(amountText)
	if err != nil {
		return decimal.Zero, err
	}

	if !amount.IsPositive() {
		return decimal.Zero, errs.ErrNotPositive
	}
	return amount, nil
}
