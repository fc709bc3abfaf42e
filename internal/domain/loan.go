package domain

import "time"

type LoanStatus string

const (
	LoanStatusInquired          LoanStatus = "INQUIRED"
	LoanStatusDenied            LoanStatus = "DENIED"
	LoanStatusAccepted          LoanStatus = "ACCEPTED"
	LoanStatusCancelled         LoanStatus = "CANCELLED"
	LoanStatusPreparedForPickup LoanStatus = "PREPARED_FOR_PICKUP"
	LoanStatusPickupDenied      LoanStatus = "PICKUP_DENIED"
	LoanStatusActive            LoanStatus = "ACTIVE"
	LoanStatusPreparedForReturn LoanStatus = "PREPARED_FOR_RETURN"
	LoanStatusReturnDenied      LoanStatus = "RETURN_DENIED"
	LoanStatusReturned          LoanStatus = "RETURNED"
)

type Loan struct {
	ID       int32      `json:"id"`
	ItemID   int32      `json:"item_id"`
	Item     *Item      `json:"item,omitempty"` // Populated when fetching loan details
	TenantID int32      `json:"tenant_id"`
	Tenant   *User      `json:"tenant,omitempty"`
	Status   LoanStatus `json:"status"`
	From     time.Time  `json:"from"`
	To       time.Time  `json:"to"`
	// Price snapshot fields — captured from the item at loan creation time.
	// The lifecycle engine never recomputes them.
	Days                   int32 `json:"days"`
	PricePerDayCents       int32 `json:"price_per_day_cents"`
	ExpectedPriceCents     int32 `json:"expected_price_cents"`
	RefundableDepositCents int32 `json:"refundable_deposit_cents"`

	TenantNote     string          `json:"tenant_note"`
	PickupProtocol *PickupProtocol `json:"pickup_protocol,omitempty"`
	ReturnProtocol *ReturnProtocol `json:"return_protocol,omitempty"`
	CreatedOn      time.Time       `json:"created_on"`
	UpdatedOn      time.Time       `json:"updated_on"`
}

// OwnerID returns the owning user of the loaned item. The item navigation
// reference must be populated.
func (l *Loan) OwnerID() int32 {
	if l.Item == nil {
		return 0
	}
	return l.Item.OwnerID
}

type PickupProtocol struct {
	ID                             int32      `json:"id"`
	LoanID                         int32      `json:"loan_id"`
	Loan                           *Loan      `json:"-"`
	Description                    string     `json:"description"`
	AcceptedRefundableDepositCents int32      `json:"accepted_refundable_deposit_cents"`
	ConfirmedAt                    *time.Time `json:"confirmed_at,omitempty"`
	CreatedOn                      time.Time  `json:"created_on"`
	UpdatedOn                      time.Time  `json:"updated_on"`
}

type ReturnProtocol struct {
	ID                             int32      `json:"id"`
	LoanID                         int32      `json:"loan_id"`
	Loan                           *Loan      `json:"-"`
	Description                    string     `json:"description"`
	ReturnedRefundableDepositCents int32      `json:"returned_refundable_deposit_cents"`
	ConfirmedAt                    *time.Time `json:"confirmed_at,omitempty"`
	CreatedOn                      time.Time  `json:"created_on"`
	UpdatedOn                      time.Time  `json:"updated_on"`
}

type Review struct {
	ID        int32     `json:"id"`
	LoanID    int32     `json:"loan_id"`
	AuthorID  int32     `json:"author_id"`
	Comment   string    `json:"comment"`
	Rating    float32   `json:"rating"`
	CreatedOn time.Time `json:"created_on"`
}

type Image struct {
	ID               int32     `json:"id"`
	OwnerID          int32     `json:"owner_id"`
	Name             string    `json:"name"`
	Extension        string    `json:"extension"`
	MimeType         string    `json:"mime_type"`
	Path             string    `json:"path"`
	ItemID           *int32    `json:"item_id,omitempty"`
	Item             *Item     `json:"-"`
	PickupProtocolID *int32    `json:"pickup_protocol_id,omitempty"`
	PickupProtocol   *PickupProtocol `json:"-"`
	ReturnProtocolID *int32    `json:"return_protocol_id,omitempty"`
	ReturnProtocol   *ReturnProtocol `json:"-"`
	UploadedOn       time.Time `json:"uploaded_on"`
}

type Notification struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Read      bool              `json:"read"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn time.Time         `json:"created_on"`
}
