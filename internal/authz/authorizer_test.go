package authz_test

import (
	"testing"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func tenantPrincipal() authz.Principal {
	return authz.Principal{UserID: 3, Roles: []domain.Role{domain.RoleUser, domain.RoleTenant}}
}

func ownerPrincipal() authz.Principal {
	return authz.Principal{UserID: 2, Roles: []domain.Role{domain.RoleUser, domain.RoleOwner}}
}

func strangerPrincipal() authz.Principal {
	return authz.Principal{UserID: 99, Roles: []domain.Role{domain.RoleUser, domain.RoleOwner, domain.RoleTenant}}
}

func adminPrincipal() authz.Principal {
	return authz.Principal{UserID: 1, Roles: []domain.Role{domain.RoleAdmin}, AdminScheme: true}
}

func testLoan() *domain.Loan {
	loan := &domain.Loan{
		ID:       42,
		ItemID:   7,
		Item:     &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusPublic},
		TenantID: 3,
		Status:   domain.LoanStatusAccepted,
	}
	return loan
}

func TestAuthorize_Loan(t *testing.T) {
	a := authz.NewAuthorizer()
	loan := testLoan()

	t.Run("tenant and owner can read and update", func(t *testing.T) {
		assert.True(t, a.Authorize(tenantPrincipal(), loan, authz.OperationRead))
		assert.True(t, a.Authorize(tenantPrincipal(), loan, authz.OperationUpdate))
		assert.True(t, a.Authorize(ownerPrincipal(), loan, authz.OperationRead))
		assert.True(t, a.Authorize(ownerPrincipal(), loan, authz.OperationUpdate))
	})

	t.Run("strangers and anonymous are denied", func(t *testing.T) {
		assert.False(t, a.Authorize(strangerPrincipal(), loan, authz.OperationRead))
		assert.False(t, a.Authorize(strangerPrincipal(), loan, authz.OperationUpdate))
		assert.False(t, a.Authorize(authz.Anonymous(), loan, authz.OperationRead))
	})

	t.Run("loan creation requires the tenant role", func(t *testing.T) {
		assert.True(t, a.Authorize(tenantPrincipal(), &domain.Loan{}, authz.OperationCreate))
		assert.False(t, a.Authorize(ownerPrincipal(), &domain.Loan{}, authz.OperationCreate))
		assert.False(t, a.Authorize(authz.Anonymous(), &domain.Loan{}, authz.OperationCreate))
	})

	t.Run("protocol authorship belongs to the owner", func(t *testing.T) {
		assert.True(t, a.Authorize(ownerPrincipal(), loan, authz.OperationCreatePickupProtocol))
		assert.True(t, a.Authorize(ownerPrincipal(), loan, authz.OperationCreateReturnProtocol))
		assert.False(t, a.Authorize(tenantPrincipal(), loan, authz.OperationCreatePickupProtocol))
		assert.False(t, a.Authorize(tenantPrincipal(), loan, authz.OperationCreateReturnProtocol))
	})

	t.Run("loans are not deletable", func(t *testing.T) {
		assert.False(t, a.Authorize(ownerPrincipal(), loan, authz.OperationDelete))
		assert.False(t, a.Authorize(tenantPrincipal(), loan, authz.OperationDelete))
	})

	t.Run("loan without item denies the owner check", func(t *testing.T) {
		bare := &domain.Loan{ID: 1, TenantID: 3}
		assert.False(t, a.Authorize(ownerPrincipal(), bare, authz.OperationRead))
		assert.True(t, a.Authorize(tenantPrincipal(), bare, authz.OperationRead))
	})
}

func TestAuthorize_Protocols(t *testing.T) {
	a := authz.NewAuthorizer()
	loan := testLoan()
	pickup := &domain.PickupProtocol{ID: 1, LoanID: loan.ID, Loan: loan}
	ret := &domain.ReturnProtocol{ID: 2, LoanID: loan.ID, Loan: loan}

	assert.True(t, a.Authorize(tenantPrincipal(), pickup, authz.OperationRead))
	assert.True(t, a.Authorize(ownerPrincipal(), ret, authz.OperationRead))
	assert.False(t, a.Authorize(strangerPrincipal(), pickup, authz.OperationRead))

	t.Run("protocol without a loan reference is denied", func(t *testing.T) {
		assert.False(t, a.Authorize(ownerPrincipal(), &domain.PickupProtocol{ID: 5}, authz.OperationRead))
	})
}

func TestAuthorize_Item(t *testing.T) {
	a := authz.NewAuthorizer()

	t.Run("public items are world readable", func(t *testing.T) {
		item := &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusPublic}
		assert.True(t, a.Authorize(authz.Anonymous(), item, authz.OperationRead))
		assert.True(t, a.Authorize(strangerPrincipal(), item, authz.OperationRead))
	})

	t.Run("non-public items visible to owner only", func(t *testing.T) {
		item := &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusApproving}
		assert.True(t, a.Authorize(ownerPrincipal(), item, authz.OperationRead))
		assert.False(t, a.Authorize(strangerPrincipal(), item, authz.OperationRead))
		assert.False(t, a.Authorize(authz.Anonymous(), item, authz.OperationRead))
	})

	t.Run("deleted items are frozen even for the owner", func(t *testing.T) {
		item := &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusDeleted}
		assert.False(t, a.Authorize(ownerPrincipal(), item, authz.OperationRead))
		assert.False(t, a.Authorize(ownerPrincipal(), item, authz.OperationUpdate))
		assert.False(t, a.Authorize(ownerPrincipal(), item, authz.OperationDelete))
	})

	t.Run("only the owner mutates", func(t *testing.T) {
		item := &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusPublic}
		assert.True(t, a.Authorize(ownerPrincipal(), item, authz.OperationUpdate))
		assert.True(t, a.Authorize(ownerPrincipal(), item, authz.OperationDelete))
		assert.False(t, a.Authorize(strangerPrincipal(), item, authz.OperationUpdate))
		assert.False(t, a.Authorize(authz.Anonymous(), item, authz.OperationDelete))
	})
}

func TestAuthorize_Image(t *testing.T) {
	a := authz.NewAuthorizer()
	loan := testLoan()

	t.Run("item image read follows the item", func(t *testing.T) {
		img := &domain.Image{ID: 1, OwnerID: 2, Item: &domain.Item{ID: 7, OwnerID: 2, Status: domain.ItemStatusPublic}}
		assert.True(t, a.Authorize(authz.Anonymous(), img, authz.OperationRead))
	})

	t.Run("protocol image read follows the loan parties", func(t *testing.T) {
		img := &domain.Image{ID: 1, OwnerID: 2, PickupProtocol: &domain.PickupProtocol{Loan: loan}}
		assert.True(t, a.Authorize(tenantPrincipal(), img, authz.OperationRead))
		assert.False(t, a.Authorize(strangerPrincipal(), img, authz.OperationRead))
	})

	t.Run("orphan image is unreadable", func(t *testing.T) {
		img := &domain.Image{ID: 1, OwnerID: 2}
		assert.False(t, a.Authorize(ownerPrincipal(), img, authz.OperationRead))
	})

	t.Run("only the uploader mutates", func(t *testing.T) {
		img := &domain.Image{ID: 1, OwnerID: 2}
		assert.True(t, a.Authorize(ownerPrincipal(), img, authz.OperationDelete))
		assert.False(t, a.Authorize(strangerPrincipal(), img, authz.OperationDelete))
	})
}

func TestAuthorize_Category(t *testing.T) {
	a := authz.NewAuthorizer()
	category := &domain.ItemCategory{ID: 1, Name: "Power tools"}

	assert.True(t, a.Authorize(authz.Anonymous(), category, authz.OperationRead))
	assert.False(t, a.Authorize(strangerPrincipal(), category, authz.OperationCreate))
	assert.False(t, a.Authorize(strangerPrincipal(), category, authz.OperationUpdate))
	assert.False(t, a.Authorize(strangerPrincipal(), category, authz.OperationDelete))
}

func TestAuthorize_AdminBypass(t *testing.T) {
	a := authz.NewAuthorizer()
	loan := testLoan()

	t.Run("admin scheme with admin role bypasses every rule", func(t *testing.T) {
		admin := adminPrincipal()
		assert.True(t, a.Authorize(admin, loan, authz.OperationDelete))
		assert.True(t, a.Authorize(admin, &domain.Item{Status: domain.ItemStatusDeleted}, authz.OperationUpdate))
		assert.True(t, a.Authorize(admin, &domain.ItemCategory{}, authz.OperationCreate))
	})

	t.Run("admin role on a user-scheme token does not bypass", func(t *testing.T) {
		p := authz.Principal{UserID: 1, Roles: []domain.Role{domain.RoleAdmin}}
		assert.False(t, a.Authorize(p, loan, authz.OperationRead))
	})

	t.Run("admin scheme without the admin role does not bypass", func(t *testing.T) {
		p := authz.Principal{UserID: 1, Roles: []domain.Role{domain.RoleUser}, AdminScheme: true}
		assert.False(t, a.Authorize(p, loan, authz.OperationRead))
	})
}

func TestAuthorize_UnknownResource(t *testing.T) {
	a := authz.NewAuthorizer()
	assert.False(t, a.Authorize(ownerPrincipal(), "not a resource", authz.OperationRead))
	assert.False(t, a.Authorize(ownerPrincipal(), nil, authz.OperationRead))
}
