package domain

import (
	"regexp"
	"strings"
)

// Validation rules shared by the activation wizard and profile updates.
// The patterns are the institutional conventions: matricules look like
// AD-123 (administrator) or MAT-456 (trainee), codes are 6 digits.
var (
	matriculeRe = regexp.MustCompile(`^(AD|MAT)-\d+$`)
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codeRe      = regexp.MustCompile(`^\d{6}$`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

const (
	MinPseudoLen   = 3
	MinPasswordLen = 6
)

// NormalizeMatricule applies the canonical uppercasing and trimming.
func NormalizeMatricule(matricule string) string {
	return strings.ToUpper(strings.TrimSpace(matricule))
}

// NormalizeEmail applies the canonical lowercasing and trimming.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidMatricule reports whether the (normalized) matricule matches the
// AD-<digits> / MAT-<digits> convention.
func ValidMatricule(matricule string) bool {
	return matriculeRe.MatchString(NormalizeMatricule(matricule))
}

// ValidEmail performs the same basic shape check as the original form.
func ValidEmail(email string) bool {
	return emailRe.MatchString(NormalizeEmail(email))
}

// NormalizeCode strips everything that is not a digit.
func NormalizeCode(code string) string {
	return nonDigitRe.ReplaceAllString(strings.TrimSpace(code), "")
}

// ValidCode reports whether the code is exactly six digits.
func ValidCode(code string) bool {
	return codeRe.MatchString(code)
}

// ValidPseudo enforces the minimum display-name length.
func ValidPseudo(pseudo string) bool {
	return len(strings.TrimSpace(pseudo)) >= MinPseudoLen
}

// ValidPassword enforces the minimum password length.
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLen
}
