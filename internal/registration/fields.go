// Package registration turns the three-step vendor sign-up form into one multipart submission
// and maps server validation failures back onto form fields.
package registration

// Field names a registration input. Wire fields use the exact multipart part names.
type Field string

const (
	FieldEmailAddress           Field = "emailAddress"
	FieldPassword               Field = "password"
	FieldConfirmPassword        Field = "confirmPassword"
	FieldFullName               Field = "fullName"
	FieldBusinessName           Field = "businessName"
	FieldBusinessCategory       Field = "businessCategory"
	FieldPhoneNumber            Field = "phoneNumber"
	FieldBusinessRegNumber      Field = "businessRegNumber"
	FieldStoreName              Field = "storeName"
	FieldBusinessAddress        Field = "businessAddress"
	FieldTaxIDNumber            Field = "taxIdNumber"
	FieldIDDocument             Field = "idDocument"
	FieldBusinessRegCertificate Field = "businessRegCertificate"
)

// FieldErrors maps a field to a human-readable message
type FieldErrors map[Field]string

// Any reports whether at least one field has an error
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// Get returns the message for f, or ""
func (fe FieldErrors) Get(f Field) string {
	return fe[f]
}

func (fe FieldErrors) add(f Field, message string) {
	if _, exists := fe[f]; !exists {
		fe[f] = message
	}
}
