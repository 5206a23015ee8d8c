package registration

// Attachment is an uploaded document
type Attachment struct {
	Filename string
	Content  []byte
}

func (a *Attachment) present() bool {
	return a != nil && a.Filename != "" && len(a.Content) > 0
}

// CompleteRegistrationData is everything collected across the three registration steps.
// BusinessRegNumber and TaxIDNumber are optional.
type CompleteRegistrationData struct {
	EmailAddress string
	Password     string

	FullName         string
	BusinessName     string
	BusinessCategory int
	PhoneNumber      string

	StoreName              string
	BusinessAddress        string
	BusinessRegNumber      string
	TaxIDNumber            string
	IDDocument             *Attachment
	BusinessRegCertificate *Attachment
}
