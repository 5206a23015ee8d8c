package registration

import (
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/utils"
)

// Messages shown next to invalid inputs
const (
	MsgEmailRequired          = "Email address is required"
	MsgEmailInvalid           = "Please enter a valid email address"
	MsgPasswordRequired       = "Password is required"
	MsgPasswordTooShort       = "Password must be at least 8 characters"
	MsgConfirmRequired        = "Please confirm your password"
	MsgPasswordMismatch       = "Passwords do not match"
	MsgFullNameRequired       = "Full name is required"
	MsgBusinessNameRequired   = "Business name is required"
	MsgCategoryRequired       = "Please select a business category"
	MsgPhoneRequired          = "Phone number is required"
	MsgPhoneInvalid           = "Please enter a valid Nigerian phone number"
	MsgStoreNameRequired      = "Store name is required"
	MsgBusinessAddrRequired   = "Business address is required"
	MsgIDDocumentRequired     = "ID document is required"
	MsgRegCertificateRequired = "Business registration certificate is required"
)

// ValidateCompleteRegistration checks a full submission the way the server does.
// It is advisory: the result never prevents Pipeline.Submit from being called.
func ValidateCompleteRegistration(data CompleteRegistrationData) FieldErrors {
	errs := FieldErrors{}
	validateAccount(data, errs)
	validateProfile(data, errs)
	validateBusinessDetails(data, errs)
	return errs
}

// ValidateAccount checks step one, including the password confirmation
func ValidateAccount(data CompleteRegistrationData, confirmPassword string) FieldErrors {
	errs := FieldErrors{}
	validateAccount(data, errs)

	switch {
	case confirmPassword == "":
		errs.add(FieldConfirmPassword, MsgConfirmRequired)
	case confirmPassword != data.Password:
		errs.add(FieldConfirmPassword, MsgPasswordMismatch)
	}
	return errs
}

// ValidateProfile checks step two. The category must be selected here even though
// submission itself falls back to the default category.
func ValidateProfile(data CompleteRegistrationData) FieldErrors {
	errs := FieldErrors{}
	validateProfile(data, errs)
	if data.BusinessCategory <= 0 {
		errs.add(FieldBusinessCategory, MsgCategoryRequired)
	}
	return errs
}

// ValidateBusinessDetails checks step three
func ValidateBusinessDetails(data CompleteRegistrationData) FieldErrors {
	errs := FieldErrors{}
	validateBusinessDetails(data, errs)
	return errs
}

func validateAccount(data CompleteRegistrationData, errs FieldErrors) {
	switch {
	case blank(data.EmailAddress):
		errs.add(FieldEmailAddress, MsgEmailRequired)
	case !utils.ValidateEmail(data.EmailAddress):
		errs.add(FieldEmailAddress, MsgEmailInvalid)
	}

	switch {
	case data.Password == "":
		errs.add(FieldPassword, MsgPasswordRequired)
	case !utils.ValidatePassword(data.Password):
		errs.add(FieldPassword, MsgPasswordTooShort)
	}
}

func validateProfile(data CompleteRegistrationData, errs FieldErrors) {
	if blank(data.FullName) {
		errs.add(FieldFullName, MsgFullNameRequired)
	}
	if blank(data.BusinessName) {
		errs.add(FieldBusinessName, MsgBusinessNameRequired)
	}

	switch {
	case blank(data.PhoneNumber):
		errs.add(FieldPhoneNumber, MsgPhoneRequired)
	case !IsNigerianPhone(data.PhoneNumber):
		errs.add(FieldPhoneNumber, MsgPhoneInvalid)
	}
}

func validateBusinessDetails(data CompleteRegistrationData, errs FieldErrors) {
	if blank(data.StoreName) {
		errs.add(FieldStoreName, MsgStoreNameRequired)
	}
	if blank(data.BusinessAddress) {
		errs.add(FieldBusinessAddress, MsgBusinessAddrRequired)
	}
	if !data.IDDocument.present() {
		errs.add(FieldIDDocument, MsgIDDocumentRequired)
	}
	if !data.BusinessRegCertificate.present() {
		errs.add(FieldBusinessRegCertificate, MsgRegCertificateRequired)
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
