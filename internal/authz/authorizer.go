package authz

import (
	"lendshare-backend/internal/domain"
)

// Operation is the action a principal attempts on a resource.
type Operation string

const (
	OperationRead                 Operation = "read"
	OperationCreate               Operation = "create"
	OperationUpdate               Operation = "update"
	OperationDelete               Operation = "delete"
	OperationCreatePickupProtocol Operation = "create_pickup_protocol"
	OperationCreateReturnProtocol Operation = "create_return_protocol"
)

// Authorizer decides, per resource and operation, whether a principal may
// act. Decisions are pure: they read claims and resource fields, never mutate
// state and never perform I/O. A "no" answer is a plain false, not an error.
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Authorize dispatches on the resource kind. An admin-scheme principal with
// the Admin role bypasses every rule. Unknown resource kinds are denied.
func (a *Authorizer) Authorize(p Principal, resource any, op Operation) bool {
	if p.IsAdmin() {
		return true
	}
	switch r := resource.(type) {
	case *domain.Item:
		return a.authorizeItem(p, r, op)
	case *domain.Loan:
		return a.authorizeLoan(p, r, op)
	case *domain.PickupProtocol:
		return a.authorizeLoan(p, r.Loan, op)
	case *domain.ReturnProtocol:
		return a.authorizeLoan(p, r.Loan, op)
	case *domain.Image:
		return a.authorizeImage(p, r, op)
	case *domain.ItemCategory:
		return a.authorizeCategory(p, op)
	default:
		return false
	}
}

func (a *Authorizer) authorizeItem(p Principal, item *domain.Item, op Operation) bool {
	if item == nil {
		return false
	}
	isOwner := !p.IsAnonymous() && p.UserID == item.OwnerID
	switch op {
	case OperationRead:
		if item.Status == domain.ItemStatusPublic {
			return true
		}
		return isOwner && item.Status != domain.ItemStatusDeleted
	case OperationCreate:
		return isOwner
	case OperationUpdate, OperationDelete:
		// A deleted item is frozen.
		return isOwner && item.Status != domain.ItemStatusDeleted
	default:
		return false
	}
}

func (a *Authorizer) authorizeLoan(p Principal, loan *domain.Loan, op Operation) bool {
	if loan == nil {
		return false
	}
	isTenant := !p.IsAnonymous() && p.UserID == loan.TenantID
	isOwner := !p.IsAnonymous() && p.UserID == loan.OwnerID()
	switch op {
	case OperationRead, OperationUpdate:
		return isTenant || isOwner
	case OperationCreate:
		return p.HasRole(domain.RoleTenant)
	case OperationCreatePickupProtocol, OperationCreateReturnProtocol:
		// The tenant can read and update the loan but protocol authorship
		// belongs to the owner alone.
		return isOwner
	case OperationDelete:
		// Loans are not deletable through this path; only the admin bypass
		// reaches a delete.
		return false
	default:
		return false
	}
}

func (a *Authorizer) authorizeImage(p Principal, img *domain.Image, op Operation) bool {
	if img == nil {
		return false
	}
	switch op {
	case OperationRead:
		// Read rights derive from the image's parent. Protocol images are
		// visible only to the parties of the protocol's loan.
		switch {
		case img.Item != nil:
			return a.authorizeItem(p, img.Item, OperationRead)
		case img.PickupProtocol != nil:
			return a.authorizeLoan(p, img.PickupProtocol.Loan, OperationRead)
		case img.ReturnProtocol != nil:
			return a.authorizeLoan(p, img.ReturnProtocol.Loan, OperationRead)
		default:
			return false
		}
	case OperationCreate, OperationUpdate, OperationDelete:
		return !p.IsAnonymous() && p.UserID == img.OwnerID
	default:
		return false
	}
}

func (a *Authorizer) authorizeCategory(p Principal, op Operation) bool {
	// Categories are world-readable; everything else is admin territory and
	// already handled by the bypass.
	return op == OperationRead
}
