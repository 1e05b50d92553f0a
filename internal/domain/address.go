package domain

import "time"

// Address is a shipping address owned by a user. At most one address per user
// carries IsDefault=true; the repository enforces that on every mutating write.
type Address struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Line1       string    `json:"line1"`
	Line2       string    `json:"line2,omitempty"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PinCode     string    `json:"pinCode"`
	IsDefault   bool      `json:"isDefault"`
	Landmark    string    `json:"landmark,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Address types accepted for the Type field.
const (
	AddressTypeHome  = "Home"
	AddressTypeWork  = "Work"
	AddressTypeOther = "Other"
)

// ValidAddressType reports whether t is one of the accepted address labels.
func ValidAddressType(t string) bool {
	switch t {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
		return true
	}
	return false
}
