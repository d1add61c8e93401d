package utils

import "regexp"

var (
	mobileRegex  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// ValidMobile reports whether s is a valid Indian mobile number
func ValidMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// ValidPincode reports whether s is a valid Indian PIN code
func ValidPincode(s string) bool {
	return pincodeRegex.MatchString(s)
}
