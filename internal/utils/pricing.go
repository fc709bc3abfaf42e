package utils

import (
	"fmt"
	"time"

	"lendshare-backend/internal/domain"
)

// LoanCost is the immutable price snapshot computed once at loan creation.
type LoanCost struct {
	Days                   int32
	PricePerDayCents       int32
	ExpectedPriceCents     int32
	RefundableDepositCents int32
}

// CalculateLoanCost computes the day count and expected price for a loan of
// the given item over [from, to]. Both end days are included, so a same-day
// loan counts as one day.
func CalculateLoanCost(from, to time.Time, item *domain.Item) (LoanCost, error) {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	if toDay.Before(fromDay) {
		return LoanCost{}, fmt.Errorf("%w: loan end date must not precede start date", domain.ErrInvalidInput)
	}

	days := int32(toDay.Sub(fromDay).Hours()/24) + 1
	return LoanCost{
		Days:                   days,
		PricePerDayCents:       item.PricePerDayCents,
		ExpectedPriceCents:     days * item.PricePerDayCents,
		RefundableDepositCents: item.RefundableDepositCents,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
