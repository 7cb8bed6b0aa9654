package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const QuantityField = "quantity"

type Item struct {
	Name     string
	Quantity int
}

// DisplayName upper-cases the first character for rendering only.
// The stored name is never changed.
func (i Item) DisplayName() string {
	r, size := utf8.DecodeRuneInString(i.Name)
	if r == utf8.RuneError {
		return i.Name
	}
	return string(unicode.ToUpper(r)) + i.Name[size:]
}

// ValidateName rejects names that would key a document by blank text.
// Case and surrounding whitespace are preserved as typed.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
