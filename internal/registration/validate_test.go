package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validData() CompleteRegistrationData {
	return CompleteRegistrationData{
		EmailAddress:           "ada@example.com",
		Password:               "supersecret",
		FullName:               "Ada Obi",
		BusinessName:           "Ada Foods",
		BusinessCategory:       3,
		PhoneNumber:            "0801 234 5678",
		StoreName:              "Ada's Kitchen",
		BusinessAddress:        "12 Marina, Lagos",
		IDDocument:             &Attachment{Filename: "id.pdf", Content: []byte("%PDF-1.4 id")},
		BusinessRegCertificate: &Attachment{Filename: "cac.pdf", Content: []byte("%PDF-1.4 cac")},
	}
}

func TestValidateCompleteRegistration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *CompleteRegistrationData)
		want   FieldErrors
	}{
		{
			name:   "valid",
			mutate: func(d *CompleteRegistrationData) {},
			want:   FieldErrors{},
		},
		{
			name:   "optional fields may be empty and category is not checked",
			mutate: func(d *CompleteRegistrationData) { d.BusinessRegNumber, d.TaxIDNumber, d.BusinessCategory = "", "", 0 },
			want:   FieldErrors{},
		},
		{
			name:   "bad email",
			mutate: func(d *CompleteRegistrationData) { d.EmailAddress = "ada@" },
			want:   FieldErrors{FieldEmailAddress: MsgEmailInvalid},
		},
		{
			name:   "short password",
			mutate: func(d *CompleteRegistrationData) { d.Password = "short" },
			want:   FieldErrors{FieldPassword: MsgPasswordTooShort},
		},
		{
			name:   "foreign phone",
			mutate: func(d *CompleteRegistrationData) { d.PhoneNumber = "+14155550100" },
			want:   FieldErrors{FieldPhoneNumber: MsgPhoneInvalid},
		},
		{
			name: "missing files",
			mutate: func(d *CompleteRegistrationData) {
				d.IDDocument = nil
				d.BusinessRegCertificate = &Attachment{Filename: "empty.pdf"}
			},
			want: FieldErrors{
				FieldIDDocument:             MsgIDDocumentRequired,
				FieldBusinessRegCertificate: MsgRegCertificateRequired,
			},
		},
		{
			name:   "everything blank",
			mutate: func(d *CompleteRegistrationData) { *d = CompleteRegistrationData{} },
			want: FieldErrors{
				FieldEmailAddress:           MsgEmailRequired,
				FieldPassword:               MsgPasswordRequired,
				FieldFullName:               MsgFullNameRequired,
				FieldBusinessName:           MsgBusinessNameRequired,
				FieldPhoneNumber:            MsgPhoneRequired,
				FieldStoreName:              MsgStoreNameRequired,
				FieldBusinessAddress:        MsgBusinessAddrRequired,
				FieldIDDocument:             MsgIDDocumentRequired,
				FieldBusinessRegCertificate: MsgRegCertificateRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(&d)
			assert.Equal(t, tt.want, ValidateCompleteRegistration(d))
		})
	}
}

func TestValidateAccount_Confirmation(t *testing.T) {
	d := validData()

	assert.Equal(t, FieldErrors{FieldConfirmPassword: MsgConfirmRequired}, ValidateAccount(d, ""))
	assert.Equal(t, FieldErrors{FieldConfirmPassword: MsgPasswordMismatch}, ValidateAccount(d, "different1"))
	assert.Empty(t, ValidateAccount(d, d.Password))
}

func TestValidateProfile_RequiresCategory(t *testing.T) {
	d := validData()
	d.BusinessCategory = 0
	assert.Equal(t, FieldErrors{FieldBusinessCategory: MsgCategoryRequired}, ValidateProfile(d))
}
