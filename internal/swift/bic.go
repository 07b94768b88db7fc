package swift

// ValidBIC reports whether bic is a structurally valid ISO 9362 identifier:
// 8 or 11 characters, positions 0-3 alphabetic (bank code), 4-5 alphabetic
// (country code), 6-7 alphanumeric (location code) and, for 11-character
// codes, 8-10 alphanumeric (branch code). It never panics; any shape
// failure is simply invalid.
func ValidBIC(bic string) bool {
	if bic == "" {
		return false
	}
	if len(bic) != 8 && len(bic) != 11 {
		return false
	}
	for i := 0; i < 4; i++ {
		if !isAlpha(bic[i]) {
			return false
		}
	}
	for i := 4; i < 6; i++ {
		if !isAlpha(bic[i]) {
			return false
		}
	}
	for i := 6; i < 8; i++ {
		if !isAlnum(bic[i]) {
			return false
		}
	}
	if len(bic) == 11 {
		for i := 8; i < 11; i++ {
			if !isAlnum(bic[i]) {
				return false
			}
		}
	}
	return true
}

// CountryCode extracts the two-character country code at BIC positions 4-5.
// It deliberately does not validate the BIC first: this is a cheap heuristic
// used for risk lookups, not a correctness guarantee. Too-short input yields
// the empty string.
func CountryCode(bic string) string {
	if len(bic) < 6 {
		return ""
	}
	return bic[4:6]
}

// BICs are uppercase by definition; lowercase letters fail validation.
func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}
