package audio

import (
	"fmt"
	"strings"
)

// ValidateText validates that there is something to speak.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}
