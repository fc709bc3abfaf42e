package domain

import "time"

type ItemStatus string

const (
	ItemStatusPublic    ItemStatus = "PUBLIC"
	ItemStatusApproving ItemStatus = "APPROVING"
	ItemStatusDenied    ItemStatus = "DENIED"
	ItemStatusDeleted   ItemStatus = "DELETED"
)

type Item struct {
	ID                     int32      `json:"id"`
	OwnerID                int32      `json:"owner_id"`
	Owner                  *User      `json:"owner,omitempty"` // Populated when fetching item details
	Name                   string     `json:"name"`
	Alias                  string     `json:"alias"`
	Description            string     `json:"description"`
	Parameters             string     `json:"parameters"`
	Status                 ItemStatus `json:"status"`
	PricePerDayCents       int32      `json:"price_per_day_cents"`
	RefundableDepositCents int32      `json:"refundable_deposit_cents"`
	PurchasePriceCents     int32      `json:"purchase_price_cents"`
	SellingPriceCents      int32      `json:"selling_price_cents"`
	Categories             []string   `json:"categories"`
	MainImageID            *int32     `json:"main_image_id,omitempty"`
	CreatedOn              time.Time  `json:"created_on"`
	UpdatedOn              time.Time  `json:"updated_on"`
	DeletedOn              *time.Time `json:"deleted_on,omitempty"`
}

type ItemCategory struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
}
