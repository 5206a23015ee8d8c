package registration

import (
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/utils"
)

// CountryCode is the dialing prefix numbers are canonicalized to
const CountryCode = "234"

// CanonicalizePhone rewrites a phone number into international form without the plus sign.
// Whitespace is removed; "+234..." loses the plus, "234..." is kept, a leading 0 becomes 234,
// and anything else gets 234 prepended. Applying it twice changes nothing.
func CanonicalizePhone(phone string) string {
	p := utils.StripWhitespace(phone)
	switch {
	case strings.HasPrefix(p, "+"+CountryCode):
		return p[1:]
	case strings.HasPrefix(p, CountryCode):
		return p
	case strings.HasPrefix(p, "0"):
		return CountryCode + p[1:]
	default:
		return CountryCode + p
	}
}

// IsNigerianPhone reports whether phone is a Nigerian mobile number in any accepted form
func IsNigerianPhone(phone string) bool {
	return utils.ValidateNigerianPhone(phone)
}
