package models

import (
	"fmt"
	"strings"
)

// parseChoice matches value against the canonical choices, ignoring case,
// and returns the canonical spelling. Enum fields accept any casing on input
// but always store and emit the canonical form.
func parseChoice(field, value string, choices []string) (string, error) {
	for _, choice := range choices {
		if strings.EqualFold(choice, value) {
			return choice, nil
		}
	}
	return "", fmt.Errorf("%s must be one of the following: %v", field, choices)
}
