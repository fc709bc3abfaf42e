package domain_test

import (
	"testing"
	"time"

	"lendshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []domain.LoanStatus{
	domain.LoanStatusInquired,
	domain.LoanStatusDenied,
	domain.LoanStatusAccepted,
	domain.LoanStatusCancelled,
	domain.LoanStatusPreparedForPickup,
	domain.LoanStatusPickupDenied,
	domain.LoanStatusActive,
	domain.LoanStatusPreparedForReturn,
	domain.LoanStatusReturnDenied,
	domain.LoanStatusReturned,
}

// Expected reachable targets per actor, current status excluded. Kept as an
// independent copy so the matrix test fails loudly if the transition tables
// drift.
var expectedTenantMoves = map[domain.LoanStatus][]domain.LoanStatus{
	domain.LoanStatusInquired:          {domain.LoanStatusCancelled},
	domain.LoanStatusDenied:            {},
	domain.LoanStatusAccepted:          {domain.LoanStatusCancelled},
	domain.LoanStatusCancelled:         {},
	domain.LoanStatusPreparedForPickup: {domain.LoanStatusCancelled, domain.LoanStatusPickupDenied, domain.LoanStatusActive},
	domain.LoanStatusPickupDenied:      {domain.LoanStatusCancelled},
	domain.LoanStatusActive:            {},
	domain.LoanStatusPreparedForReturn: {domain.LoanStatusReturnDenied, domain.LoanStatusReturned},
	domain.LoanStatusReturnDenied:      {domain.LoanStatusPreparedForReturn, domain.LoanStatusReturned},
	domain.LoanStatusReturned:          {},
}

var expectedOwnerMoves = map[domain.LoanStatus][]domain.LoanStatus{
	domain.LoanStatusInquired:          {domain.LoanStatusDenied, domain.LoanStatusAccepted},
	domain.LoanStatusDenied:            {},
	domain.LoanStatusAccepted:          {domain.LoanStatusCancelled, domain.LoanStatusPreparedForPickup, domain.LoanStatusActive},
	domain.LoanStatusCancelled:         {},
	domain.LoanStatusPreparedForPickup: {domain.LoanStatusCancelled},
	domain.LoanStatusPickupDenied:      {domain.LoanStatusPreparedForPickup, domain.LoanStatusCancelled},
	domain.LoanStatusActive:            {domain.LoanStatusPreparedForReturn},
	domain.LoanStatusPreparedForReturn: {},
	domain.LoanStatusReturnDenied:      {domain.LoanStatusPreparedForReturn},
	domain.LoanStatusReturned:          {},
}

func containsStatus(statuses []domain.LoanStatus, status domain.LoanStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// newLoan builds a loan in the given status with both protocols attached so
// protocol guards never interfere with pure transition checks.
func newLoan(status domain.LoanStatus) *domain.Loan {
	loan := &domain.Loan{
		ID:       42,
		ItemID:   7,
		Item:     &domain.Item{ID: 7, OwnerID: 2, Name: "Cordless drill"},
		TenantID: 3,
		Status:   status,
	}
	loan.PickupProtocol = &domain.PickupProtocol{ID: 1, LoanID: loan.ID, Loan: loan}
	loan.ReturnProtocol = &domain.ReturnProtocol{ID: 2, LoanID: loan.ID, Loan: loan}
	return loan
}

func TestLoanTransitions_TenantMatrix(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			loan := newLoan(from)
			err := domain.GetState(from).HandleTenant(loan, to)

			switch {
			case from == to:
				assert.NoError(t, err, "tenant %s -> %s should be a no-op", from, to)
				assert.Equal(t, from, loan.Status)
			case containsStatus(expectedTenantMoves[from], to):
				assert.NoError(t, err, "tenant %s -> %s should be allowed", from, to)
				assert.Equal(t, to, loan.Status)
			default:
				assert.ErrorIs(t, err, domain.ErrActionNotAllowed, "tenant %s -> %s should be rejected", from, to)
				assert.Equal(t, from, loan.Status, "rejected transition must not mutate the loan")
			}
		}
	}
}

func TestLoanTransitions_OwnerMatrix(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			loan := newLoan(from)
			err := domain.GetState(from).HandleOwner(loan, to)

			switch {
			case from == to:
				assert.NoError(t, err, "owner %s -> %s should be a no-op", from, to)
				assert.Equal(t, from, loan.Status)
			case containsStatus(expectedOwnerMoves[from], to):
				assert.NoError(t, err, "owner %s -> %s should be allowed", from, to)
				assert.Equal(t, to, loan.Status)
			default:
				assert.ErrorIs(t, err, domain.ErrActionNotAllowed, "owner %s -> %s should be rejected", from, to)
				assert.Equal(t, from, loan.Status, "rejected transition must not mutate the loan")
			}
		}
	}
}

func TestLoanTransitions_IdempotentRequestLeavesLoanUntouched(t *testing.T) {
	confirmed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := newLoan(domain.LoanStatusActive)
	loan.PickupProtocol.ConfirmedAt = &confirmed

	err := domain.GetState(domain.LoanStatusActive).HandleTenant(loan, domain.LoanStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.Equal(t, &confirmed, loan.PickupProtocol.ConfirmedAt, "no-op must not re-stamp the protocol")
}

func TestLoanTransitions_ProtocolGuards(t *testing.T) {
	t.Run("owner cannot prepare pickup without protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusAccepted)
		loan.PickupProtocol = nil

		err := domain.GetState(domain.LoanStatusAccepted).HandleOwner(loan, domain.LoanStatusPreparedForPickup)
		assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
		assert.Equal(t, domain.LoanStatusAccepted, loan.Status)
	})

	t.Run("tenant cannot confirm pickup without protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusPreparedForPickup)
		loan.PickupProtocol = nil

		err := domain.GetState(domain.LoanStatusPreparedForPickup).HandleTenant(loan, domain.LoanStatusActive)
		assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
		assert.Equal(t, domain.LoanStatusPreparedForPickup, loan.Status)
	})

	t.Run("owner cannot prepare return without protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusActive)
		loan.ReturnProtocol = nil

		err := domain.GetState(domain.LoanStatusActive).HandleOwner(loan, domain.LoanStatusPreparedForReturn)
		assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
		assert.Equal(t, domain.LoanStatusActive, loan.Status)
	})

	t.Run("tenant cannot confirm return without protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusPreparedForReturn)
		loan.ReturnProtocol = nil

		err := domain.GetState(domain.LoanStatusPreparedForReturn).HandleTenant(loan, domain.LoanStatusReturned)
		assert.ErrorIs(t, err, domain.ErrActionNotAllowed)
		assert.Equal(t, domain.LoanStatusPreparedForReturn, loan.Status)
	})
}

func TestLoanTransitions_ConfirmedAtStamping(t *testing.T) {
	pinned := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	clock := func() time.Time { return pinned }

	t.Run("tenant confirming pickup stamps the pickup protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusPreparedForPickup)
		require.Nil(t, loan.PickupProtocol.ConfirmedAt)

		err := domain.GetStateWithClock(domain.LoanStatusPreparedForPickup, clock).HandleTenant(loan, domain.LoanStatusActive)
		require.NoError(t, err)
		require.NotNil(t, loan.PickupProtocol.ConfirmedAt)
		assert.Equal(t, pinned, *loan.PickupProtocol.ConfirmedAt)
		assert.Nil(t, loan.ReturnProtocol.ConfirmedAt)
	})

	t.Run("tenant confirming return stamps the return protocol", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusPreparedForReturn)

		err := domain.GetStateWithClock(domain.LoanStatusPreparedForReturn, clock).HandleTenant(loan, domain.LoanStatusReturned)
		require.NoError(t, err)
		require.NotNil(t, loan.ReturnProtocol.ConfirmedAt)
		assert.Equal(t, pinned, *loan.ReturnProtocol.ConfirmedAt)
	})

	t.Run("owner activating directly does not stamp", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusAccepted)

		err := domain.GetStateWithClock(domain.LoanStatusAccepted, clock).HandleOwner(loan, domain.LoanStatusActive)
		require.NoError(t, err)
		assert.Nil(t, loan.PickupProtocol.ConfirmedAt)
	})

	t.Run("tenant denying pickup does not stamp", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusPreparedForPickup)

		err := domain.GetStateWithClock(domain.LoanStatusPreparedForPickup, clock).HandleTenant(loan, domain.LoanStatusPickupDenied)
		require.NoError(t, err)
		assert.Nil(t, loan.PickupProtocol.ConfirmedAt)
	})
}

func TestGetState_PanicsOnUnknownStatus(t *testing.T) {
	assert.Panics(t, func() {
		domain.GetState(domain.LoanStatus("SHIPPED"))
	})
}

func TestLoanState_CapabilityPredicates(t *testing.T) {
	t.Run("pickup protocol creation only while accepted and absent", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusAccepted)
		loan.PickupProtocol = nil
		assert.True(t, domain.GetState(domain.LoanStatusAccepted).CanCreatePickupProtocol(loan))

		loan.PickupProtocol = &domain.PickupProtocol{}
		assert.False(t, domain.GetState(domain.LoanStatusAccepted).CanCreatePickupProtocol(loan), "already created")

		loan.PickupProtocol = nil
		assert.False(t, domain.GetState(domain.LoanStatusInquired).CanCreatePickupProtocol(loan), "not yet accepted")
	})

	t.Run("pickup protocol editable until owner commits", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusAccepted)
		assert.True(t, domain.GetState(domain.LoanStatusAccepted).CanUpdatePickupProtocol(loan))
		assert.True(t, domain.GetState(domain.LoanStatusPickupDenied).CanUpdatePickupProtocol(loan))
		assert.False(t, domain.GetState(domain.LoanStatusPreparedForPickup).CanUpdatePickupProtocol(loan))
		assert.False(t, domain.GetState(domain.LoanStatusActive).CanUpdatePickupProtocol(loan))
	})

	t.Run("return protocol creation only while active and absent", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusActive)
		loan.ReturnProtocol = nil
		assert.True(t, domain.GetState(domain.LoanStatusActive).CanCreateReturnProtocol(loan))

		loan.ReturnProtocol = &domain.ReturnProtocol{}
		assert.False(t, domain.GetState(domain.LoanStatusActive).CanCreateReturnProtocol(loan), "already created")

		loan.ReturnProtocol = nil
		assert.False(t, domain.GetState(domain.LoanStatusAccepted).CanCreateReturnProtocol(loan))
	})

	t.Run("return protocol editable until owner commits", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusActive)
		assert.True(t, domain.GetState(domain.LoanStatusActive).CanUpdateReturnProtocol(loan))
		assert.True(t, domain.GetState(domain.LoanStatusReturnDenied).CanUpdateReturnProtocol(loan))
		assert.False(t, domain.GetState(domain.LoanStatusPreparedForReturn).CanUpdateReturnProtocol(loan))
		assert.False(t, domain.GetState(domain.LoanStatusReturned).CanUpdateReturnProtocol(loan))
	})

	t.Run("reviews only on terminal statuses", func(t *testing.T) {
		loan := newLoan(domain.LoanStatusReturned)
		assert.True(t, domain.GetState(domain.LoanStatusReturned).CanCreateReview(loan))
		assert.True(t, domain.GetState(domain.LoanStatusDenied).CanCreateReview(loan))
		assert.True(t, domain.GetState(domain.LoanStatusCancelled).CanCreateReview(loan))
		assert.False(t, domain.GetState(domain.LoanStatusActive).CanCreateReview(loan))
		assert.False(t, domain.GetState(domain.LoanStatusInquired).CanCreateReview(loan))
	})
}

// Full lifecycle walks mirroring how the two parties drive a loan in practice.
func TestLoanLifecycle_HappyPath(t *testing.T) {
	pinned := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return pinned }

	loan := &domain.Loan{
		ID:       1,
		ItemID:   7,
		Item:     &domain.Item{ID: 7, OwnerID: 2},
		TenantID: 3,
		Status:   domain.LoanStatusInquired,
	}

	// Owner accepts the inquiry.
	require.NoError(t, domain.GetStateWithClock(loan.Status, clock).HandleOwner(loan, domain.LoanStatusAccepted))

	// Owner writes the pickup protocol and commits.
	require.True(t, domain.GetState(loan.Status).CanCreatePickupProtocol(loan))
	loan.PickupProtocol = &domain.PickupProtocol{ID: 10, LoanID: loan.ID, Loan: loan}
	require.NoError(t, domain.GetStateWithClock(loan.Status, clock).HandleOwner(loan, domain.LoanStatusPreparedForPickup))

	// Tenant confirms the pickup: loan goes active, protocol is stamped.
	require.NoError(t, domain.GetStateWithClock(loan.Status, clock).HandleTenant(loan, domain.LoanStatusActive))
	require.NotNil(t, loan.PickupProtocol.ConfirmedAt)
	assert.Equal(t, pinned, *loan.PickupProtocol.ConfirmedAt)

	// Owner writes the return protocol and commits.
	require.True(t, domain.GetState(loan.Status).CanCreateReturnProtocol(loan))
	loan.ReturnProtocol = &domain.ReturnProtocol{ID: 11, LoanID: loan.ID, Loan: loan}
	require.NoError(t, domain.GetStateWithClock(loan.Status, clock).HandleOwner(loan, domain.LoanStatusPreparedForReturn))

	// Tenant confirms the return: loan closes, return protocol is stamped.
	require.NoError(t, domain.GetStateWithClock(loan.Status, clock).HandleTenant(loan, domain.LoanStatusReturned))
	assert.Equal(t, domain.LoanStatusReturned, loan.Status)
	require.NotNil(t, loan.ReturnProtocol.ConfirmedAt)
	assert.Equal(t, pinned, *loan.ReturnProtocol.ConfirmedAt)

	// Both parties may now review.
	assert.True(t, domain.GetState(loan.Status).CanCreateReview(loan))
}

func TestLoanLifecycle_PickupDeniedAndRedone(t *testing.T) {
	loan := newLoan(domain.LoanStatusPreparedForPickup)

	// Tenant rejects the pickup protocol content.
	require.NoError(t, domain.GetState(loan.Status).HandleTenant(loan, domain.LoanStatusPickupDenied))
	assert.Equal(t, domain.LoanStatusPickupDenied, loan.Status)

	// The protocol re-opens for editing while denied.
	assert.True(t, domain.GetState(loan.Status).CanUpdatePickupProtocol(loan))

	// Owner fixes it and commits again; tenant confirms this time.
	require.NoError(t, domain.GetState(loan.Status).HandleOwner(loan, domain.LoanStatusPreparedForPickup))
	require.NoError(t, domain.GetState(loan.Status).HandleTenant(loan, domain.LoanStatusActive))
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.NotNil(t, loan.PickupProtocol.ConfirmedAt)
}

func TestLoanLifecycle_ReturnDeniedAndRedone(t *testing.T) {
	loan := newLoan(domain.LoanStatusPreparedForReturn)

	// Tenant rejects the return protocol content.
	require.NoError(t, domain.GetState(loan.Status).HandleTenant(loan, domain.LoanStatusReturnDenied))
	assert.True(t, domain.GetState(loan.Status).CanUpdateReturnProtocol(loan))

	// Owner re-submits, tenant confirms.
	require.NoError(t, domain.GetState(loan.Status).HandleOwner(loan, domain.LoanStatusPreparedForReturn))
	require.NoError(t, domain.GetState(loan.Status).HandleTenant(loan, domain.LoanStatusReturned))
	assert.Equal(t, domain.LoanStatusReturned, loan.Status)
	assert.NotNil(t, loan.ReturnProtocol.ConfirmedAt)
}
