package domain

import "time"

// Vendor represents a registered seller account
type Vendor struct {
	ID                string    `json:"id" db:"id"`
	EmailAddress      string    `json:"emailAddress" db:"email_address"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	FullName          string    `json:"fullName" db:"full_name"`
	BusinessName      string    `json:"businessName" db:"business_name"`
	BusinessCategory  int       `json:"businessCategory" db:"business_category"`
	PhoneNumber       string    `json:"phoneNumber" db:"phone_number"`
	BusinessRegNumber string    `json:"businessRegNumber" db:"business_reg_number"`
	StoreName         string    `json:"storeName" db:"store_name"`
	BusinessAddress   string    `json:"businessAddress" db:"business_address"`
	TaxIDNumber       string    `json:"taxIdNumber" db:"tax_id_number"`
	Verified          bool      `json:"verified" db:"verified"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Document is a file uploaded during vendor verification
type Document struct {
	VendorID    string `json:"vendorId"`
	Kind        string `json:"kind"` // idDocument, businessRegCertificate
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Category is a business/product category offered by the marketplace
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TokenClaims represents the claims carried by a seller access token
type TokenClaims struct {
	VendorID string `json:"vendor_id"`
	Email    string `json:"email"`
	Exp      int64  `json:"exp"`
	Iat      int64  `json:"iat"`
}

// IsExpired checks if the token is expired
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}
