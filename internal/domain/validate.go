package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field length bounds shared by validators and the schema.
const (
	NameMinLen    = 2
	NameMaxLen    = 100
	RegionNameMin = 2
	RegionNameMax = 200
	RegionCodeLen = 2
	TitleMinLen   = 5
	TitleMaxLen   = 500
	ContentMinLen = 10
)

// nameRegex permits letters, spaces, hyphens, and apostrophes.
var nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

// ValidateName checks a person-name field (first_name, last_name). It returns
// every violation found; an empty slice means the value is valid. Validation
// is purely syntactic, stateful checks belong to the service layer.
func ValidateName(value, field string) []string {
	var errs []string

	value = strings.TrimSpace(value)
	if value == "" {
		return append(errs, fmt.Sprintf("%s is required", field))
	}

	length := utf8.RuneCountInString(value)
	if length < NameMinLen {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, NameMinLen))
	}
	if length > NameMaxLen {
		errs = append(errs, fmt.Sprintf("%s must be less than %d characters", field, NameMaxLen))
	}
	if !nameRegex.MatchString(value) {
		errs = append(errs, fmt.Sprintf("%s must contain only letters, spaces, hyphens, and apostrophes", field))
	}

	return errs
}

// ValidateRegionCode checks the two-letter region code format. The value is
// normalized (trimmed, upper-cased) before checking.
func ValidateRegionCode(code string) []string {
	var errs []string

	code = NormalizeRegionCode(code)
	if code == "" {
		return append(errs, "region code is required")
	}

	if len(code) != RegionCodeLen {
		errs = append(errs, fmt.Sprintf("region code must be exactly %d characters", RegionCodeLen))
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			errs = append(errs, "region code must contain only letters")
			break
		}
	}

	return errs
}

// ValidateText checks a free-text field against length bounds. Bounds are in
// characters, not bytes. A maxLen of 0 means unbounded.
func ValidateText(value, field string, minLen, maxLen int) []string {
	var errs []string

	value = strings.TrimSpace(value)
	if value == "" {
		return append(errs, fmt.Sprintf("%s is required", field))
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, minLen))
	}
	if maxLen > 0 && length > maxLen {
		errs = append(errs, fmt.Sprintf("%s must be less than %d characters", field, maxLen))
	}

	return errs
}

// ValidateIDList checks that every id in a relation list is a positive
// integer. Violations are reported per index.
func ValidateIDList(ids []int64, field string) []string {
	var errs []string

	for i, id := range ids {
		if id <= 0 {
			errs = append(errs, fmt.Sprintf("%s[%d] must be a positive integer", field, i))
		}
	}

	return errs
}
