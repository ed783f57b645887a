package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ShippingProfile is the saved shipping info on an account. Orders keep their
// own copy; editing the profile never touches placed orders.
type ShippingProfile struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Phone   string `bson:"phone" json:"phone"`
}

// Account holds a registered user. Credential and code fields never leave the
// server: they are excluded from JSON so no projection can leak them.
type Account struct {
	ID               string           `bson:"_id,omitempty" json:"id"`
	Name             string           `bson:"name" json:"name"`
	Email            string           `bson:"email" json:"email"`
	PasswordHash     string           `bson:"password_hash" json:"-"`
	Role             Role             `bson:"role" json:"role"`
	Verified         bool             `bson:"verified" json:"verified"`
	VerificationCode string           `bson:"verification_code,omitempty" json:"-"`
	ResetCode        string           `bson:"reset_code,omitempty" json:"-"`
	ResetCodeExpiry  time.Time        `bson:"reset_code_expiry,omitempty" json:"-"`
	Shipping         *ShippingProfile `bson:"shipping,omitempty" json:"shipping,omitempty"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
