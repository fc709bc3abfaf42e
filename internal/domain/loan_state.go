package domain

import (
	"fmt"
	"time"
)

// tenantTransitions and ownerTransitions define the valid loan state
// transitions per actor. The key is the current status, the value is the set
// of statuses that actor may request. The current status itself is always a
// valid request (idempotent no-op) and is listed for completeness.
var tenantTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusInquired:          {LoanStatusInquired, LoanStatusCancelled},
	LoanStatusDenied:            {LoanStatusDenied},
	LoanStatusAccepted:          {LoanStatusAccepted, LoanStatusCancelled},
	LoanStatusCancelled:         {LoanStatusCancelled},
	LoanStatusPreparedForPickup: {LoanStatusPreparedForPickup, LoanStatusCancelled, LoanStatusPickupDenied, LoanStatusActive},
	LoanStatusPickupDenied:      {LoanStatusPickupDenied, LoanStatusCancelled},
	LoanStatusActive:            {LoanStatusActive},
	LoanStatusPreparedForReturn: {LoanStatusPreparedForReturn, LoanStatusReturnDenied, LoanStatusReturned},
	// Mirrors the prepared-for-return options so the deny-and-redo cycle can
	// complete from the tenant side.
	LoanStatusReturnDenied: {LoanStatusReturnDenied, LoanStatusPreparedForReturn, LoanStatusReturned},
	LoanStatusReturned:     {LoanStatusReturned},
}

var ownerTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusInquired:          {LoanStatusInquired, LoanStatusDenied, LoanStatusAccepted},
	LoanStatusDenied:            {LoanStatusDenied},
	LoanStatusAccepted:          {LoanStatusAccepted, LoanStatusCancelled, LoanStatusPreparedForPickup, LoanStatusActive},
	LoanStatusCancelled:         {LoanStatusCancelled},
	LoanStatusPreparedForPickup: {LoanStatusPreparedForPickup, LoanStatusCancelled},
	LoanStatusPickupDenied:      {LoanStatusPickupDenied, LoanStatusPreparedForPickup, LoanStatusCancelled},
	LoanStatusActive:            {LoanStatusActive, LoanStatusPreparedForReturn},
	LoanStatusPreparedForReturn: {LoanStatusPreparedForReturn},
	LoanStatusReturnDenied:      {LoanStatusReturnDenied, LoanStatusPreparedForReturn},
	LoanStatusReturned:          {LoanStatusReturned},
}

// LoanState validates and applies state transitions for a loan in a single
// status. Instances are stateless apart from the injected clock and are
// constructed per lookup via GetState.
type LoanState struct {
	status LoanStatus
	now    func() time.Time
}

// GetState resolves the state handler for the given status. The switch is
// exhaustive over all ten statuses; anything else is a programming error.
func GetState(status LoanStatus) LoanState {
	return GetStateWithClock(status, time.Now)
}

// GetStateWithClock is GetState with an injectable clock for deterministic
// ConfirmedAt stamping in tests.
func GetStateWithClock(status LoanStatus, now func() time.Time) LoanState {
	switch status {
	case LoanStatusInquired, LoanStatusDenied, LoanStatusAccepted, LoanStatusCancelled,
		LoanStatusPreparedForPickup, LoanStatusPickupDenied, LoanStatusActive,
		LoanStatusPreparedForReturn, LoanStatusReturnDenied, LoanStatusReturned:
		return LoanState{status: status, now: now}
	default:
		panic(fmt.Sprintf("unknown loan status %q", status))
	}
}

// HandleTenant applies a tenant-requested status change. Requesting the
// current status is a no-op success. An illegal target, or a transition whose
// protocol guard fails, returns ErrActionNotAllowed and leaves the loan
// untouched.
func (s LoanState) HandleTenant(loan *Loan, requested LoanStatus) error {
	return s.handle(loan, requested, "tenant", tenantTransitions)
}

// HandleOwner applies an owner-requested status change with the owner's
// transition table.
func (s LoanState) HandleOwner(loan *Loan, requested LoanStatus) error {
	return s.handle(loan, requested, "owner", ownerTransitions)
}

func (s LoanState) handle(loan *Loan, requested LoanStatus, actor string, table map[LoanStatus][]LoanStatus) error {
	if requested == s.status {
		return nil
	}
	if !contains(table[s.status], requested) {
		return fmt.Errorf("%w: %s cannot move loan from %s to %s", ErrActionNotAllowed, actor, s.status, requested)
	}
	if err := s.checkProtocolGuards(loan, requested); err != nil {
		return err
	}

	// All validation passed, mutate. Confirmation stamps happen only when the
	// tenant accepts the protocol content, never on the owner's side.
	switch requested {
	case LoanStatusActive:
		if actor == "tenant" {
			t := s.now()
			loan.PickupProtocol.ConfirmedAt = &t
		}
	case LoanStatusReturned:
		t := s.now()
		loan.ReturnProtocol.ConfirmedAt = &t
	}
	loan.Status = requested
	return nil
}

// checkProtocolGuards rejects transitions that require a protocol which was
// never created. Denied protocols are edited in place and re-submitted, so an
// unset ConfirmedAt is expected on re-entry.
func (s LoanState) checkProtocolGuards(loan *Loan, requested LoanStatus) error {
	switch requested {
	case LoanStatusPreparedForPickup:
		if loan.PickupProtocol == nil {
			return fmt.Errorf("%w: loan %d has no pickup protocol", ErrActionNotAllowed, loan.ID)
		}
	case LoanStatusActive:
		if s.status == LoanStatusPreparedForPickup && loan.PickupProtocol == nil {
			return fmt.Errorf("%w: loan %d has no pickup protocol", ErrActionNotAllowed, loan.ID)
		}
	case LoanStatusPreparedForReturn:
		if loan.ReturnProtocol == nil {
			return fmt.Errorf("%w: loan %d has no return protocol", ErrActionNotAllowed, loan.ID)
		}
	case LoanStatusReturned:
		if loan.ReturnProtocol == nil {
			return fmt.Errorf("%w: loan %d has no return protocol", ErrActionNotAllowed, loan.ID)
		}
	}
	return nil
}

// CanCreatePickupProtocol reports whether the owner may create the pickup
// protocol: exactly once, while the loan is accepted.
func (s LoanState) CanCreatePickupProtocol(loan *Loan) bool {
	return s.status == LoanStatusAccepted && loan.PickupProtocol == nil
}

// CanUpdatePickupProtocol reports whether the pickup protocol is still
// editable. Editing closes once the owner commits to PreparedForPickup and
// re-opens only on PickupDenied.
func (s LoanState) CanUpdatePickupProtocol(loan *Loan) bool {
	return s.status == LoanStatusAccepted || s.status == LoanStatusPickupDenied
}

// CanCreateReturnProtocol reports whether the owner may create the return
// protocol: exactly once, while the loan is active.
func (s LoanState) CanCreateReturnProtocol(loan *Loan) bool {
	return s.status == LoanStatusActive && loan.ReturnProtocol == nil
}

// CanUpdateReturnProtocol mirrors CanUpdatePickupProtocol for the return side.
func (s LoanState) CanUpdateReturnProtocol(loan *Loan) bool {
	return s.status == LoanStatusActive || s.status == LoanStatusReturnDenied
}

// CanCreateReview reports whether the loan has reached a status from which a
// review may be authored. Once-per-author is enforced by the review service.
func (s LoanState) CanCreateReview(loan *Loan) bool {
	return s.status == LoanStatusReturned || s.status == LoanStatusDenied || s.status == LoanStatusCancelled
}

func contains(statuses []LoanStatus, status LoanStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
