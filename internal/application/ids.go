package application

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// NewUUID returns a random record identifier. It is the default id
// generator of the CLI.
func NewUUID() string {
	return uuid.NewString()
}

// bookingReference derives the short desk reference ("B" + six characters)
// shown to guests from a record id.
func bookingReference(id string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(id) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	suffix := b.String()
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "B" + suffix
}
