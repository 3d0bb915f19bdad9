package gst

import "regexp"

// HSN (goods) and SAC (services) codes are 4 to 8 digits.
var hsnPattern = regexp.MustCompile(`^\d{4,8}$`)

// ValidHSNCode reports whether code has the HSN/SAC layout.
func ValidHSNCode(code string) bool {
	return hsnPattern.MatchString(code)
}
