package registration

import (
	"strconv"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"go.uber.org/zap"
)

// DefaultCategoryID replaces a missing or invalid business category on submission
const DefaultCategoryID = 1

// CategoryID stringifies a category id, substituting DefaultCategoryID for non-positive values
func CategoryID(id int) string {
	if id <= 0 {
		return strconv.Itoa(DefaultCategoryID)
	}
	return strconv.Itoa(id)
}

// ParseCategoryID reads a category id typed by the user; anything that is not an integer yields 0
func ParseCategoryID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return id
}

// BuildPayload encodes data as the registration multipart body.
// The phone number is canonicalized and an invalid category is replaced, with a warning.
func BuildPayload(data CompleteRegistrationData, logger *zap.Logger) *apiclient.FormData {
	if logger == nil {
		logger = zap.NewNop()
	}
	if data.BusinessCategory <= 0 {
		logger.Warn("Business category missing or invalid, submitting default",
			zap.Int("category", data.BusinessCategory),
			zap.Int("default", DefaultCategoryID),
		)
	}

	form := apiclient.NewFormData().
		Add(string(FieldEmailAddress), data.EmailAddress).
		Add(string(FieldPassword), data.Password).
		Add(string(FieldFullName), data.FullName).
		Add(string(FieldBusinessName), data.BusinessName).
		Add(string(FieldBusinessCategory), CategoryID(data.BusinessCategory)).
		Add(string(FieldPhoneNumber), CanonicalizePhone(data.PhoneNumber)).
		Add(string(FieldBusinessRegNumber), data.BusinessRegNumber).
		Add(string(FieldStoreName), data.StoreName).
		Add(string(FieldBusinessAddress), data.BusinessAddress).
		Add(string(FieldTaxIDNumber), data.TaxIDNumber)

	if data.IDDocument != nil {
		form.AddFile(string(FieldIDDocument), data.IDDocument.Filename, data.IDDocument.Content)
	}
	if data.BusinessRegCertificate != nil {
		form.AddFile(string(FieldBusinessRegCertificate), data.BusinessRegCertificate.Filename, data.BusinessRegCertificate.Content)
	}

	return form
}
