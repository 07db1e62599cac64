// Package validation holds the input sanitizer and the pure field validators
// that every mutating endpoint applies before touching the store.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxInputLength = 1000
	defaultPage    = 1
	defaultLimit   = 10
	maxLimit       = 100
	minPasswordLen = 6
)

var (
	usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
	unsafeChars    = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")
)

// SanitizeInput trims the input, strips characters commonly used in injection
// payloads and caps the length at 1000 characters. The cap counts runes so a
// multibyte character is never split. It never fails; non-string values are
// handled by the typed request structs before they reach this point.
func SanitizeInput(s string) string {
	s = unsafeChars.Replace(strings.TrimSpace(s))
	if runes := []rune(s); len(runes) > maxInputLength {
		s = string(runes[:maxInputLength])
	}
	return s
}

// ValidateUsername reports whether s is 3-30 characters of letters, digits
// and underscores.
func ValidateUsername(s string) bool {
	return usernameRegexp.MatchString(s)
}

// ValidatePassword reports whether the password meets the minimum length.
func ValidatePassword(s string) bool {
	return len(s) >= minPasswordLen
}

// ProductData is the field set checked by ValidateProductData. Pointer fields
// distinguish "absent" from zero values.
type ProductData struct {
	Name        string
	Type        string
	SKU         string
	ImageURL    string
	Description string
	Quantity    *int
	Price       *float64
}

// ValidationResult collects every violation found in a payload.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ValidateProductData checks a product payload and collects all violations
// rather than stopping at the first one.
func ValidateProductData(data ProductData) ValidationResult {
	var errs []string

	if strings.TrimSpace(data.Name) == "" {
		errs = append(errs, "Product name is required")
	}
	if strings.TrimSpace(data.Type) == "" {
		errs = append(errs, "Product type is required")
	}
	if strings.TrimSpace(data.SKU) == "" {
		errs = append(errs, "SKU is required")
	}
	if data.Quantity == nil {
		errs = append(errs, "Quantity is required")
	} else if *data.Quantity < 0 {
		errs = append(errs, "Quantity must be a non-negative integer")
	}
	if data.Price == nil {
		errs = append(errs, "Price is required")
	} else if *data.Price < 0 {
		errs = append(errs, "Price must be a non-negative number")
	}
	if url := strings.TrimSpace(data.ImageURL); url != "" {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			errs = append(errs, "Invalid image URL format")
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateQuantityUpdate checks a standalone quantity value. A nil pointer
// means the field was absent from the request body.
func ValidateQuantityUpdate(quantity *int) (bool, string) {
	if quantity == nil {
		return false, "Quantity is required"
	}
	if *quantity < 0 {
		return false, "Quantity must be a non-negative integer"
	}
	return true, ""
}

// ValidatePaginationParams coerces raw query values into usable paging
// parameters. Page is floored at 1, limit clamped to [1, 100]; parse failures
// fall back to the defaults. Never errors.
func ValidatePaginationParams(pageStr, limitStr string) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page == 0 {
		page = defaultPage
	}
	if page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
