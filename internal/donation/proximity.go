package donation

import "regexp"

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// IsValidPostalCode reports whether code is a five digit German postal code
func IsValidPostalCode(code string) bool {
	return postalCodePattern.MatchString(code)
}

// IsNearOffice reports whether the donor lives in the same two-digit postal
// region as the office. Malformed codes on either side are never near.
func IsNearOffice(donorPLZ, officePLZ string) bool {
	if !IsValidPostalCode(donorPLZ) || !IsValidPostalCode(officePLZ) {
		return false
	}
	return donorPLZ[:2] == officePLZ[:2]
}
