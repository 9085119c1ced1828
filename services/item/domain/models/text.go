package models

import (
	"strings"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// requiredText trims s and rejects the result when it is empty.
func requiredText(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", itemdomain.NewValidationError(field, itemdomain.RuleEmpty, "is required")
	}
	return v, nil
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
