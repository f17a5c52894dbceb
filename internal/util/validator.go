package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// emailRe mirrors the format the original frontend was validated against.
var emailRe = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// ValidateEmail checks email format. Empty input is not accepted here;
// callers decide whether the field is optional.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateTransactionType accepts exactly "income" or "expense".
func ValidateTransactionType(t string) error {
	if t != "income" && t != "expense" {
		return fmt.Errorf("type must be income or expense, got %q", t)
	}
	return nil
}

// ValidateAmount rejects negative amounts.
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative, got %f", amount)
	}
	return nil
}

// ValidateDescription requires a non-empty string of at most 500 characters.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return fmt.Errorf("description is empty")
	}
	if len([]rune(desc)) > 500 {
		return fmt.Errorf("description too long, max 500 characters")
	}
	return nil
}

// ParseDate accepts the date formats clients send (RFC3339 or YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", dateStr)
}
