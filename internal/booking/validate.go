// Package booking contains the wizard's pure validation rules: contact
// details entered on the booking form and payment proof files staged on the
// payment page. Keeping them free of HTTP lets the rules be tested as
// plain functions.
package booking

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/pandukusuma/sendratari-booking/internal/model"
)

// MaxProofSize is the upper bound for an uploaded payment proof: 5 MiB.
const MaxProofSize = 5 << 20

// proofMIMEs are the accepted payment proof content types.
var proofMIMEs = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// ErrProofType rejects uploads that are not a JPG, PNG or PDF, regardless
// of size. ErrProofTooLarge rejects accepted types above MaxProofSize.
// Both messages are shown to the visitor as-is.
var (
	ErrProofType     = errors.New("Please upload only JPG, PNG, or PDF files")
	ErrProofTooLarge = errors.New("File size must be less than 5MB")
)

// ValidateContact checks the booking form fields and returns errors keyed
// by field name. An empty map means the contact details are acceptable.
//
// Rules:
//   - full_name: must contain something other than whitespace.
//   - phone_number: must be non-empty, and after stripping every non-digit
//     character must be 10 to 13 digits long.
func ValidateContact(c model.ContactInfo) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(c.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}

	if strings.TrimSpace(c.PhoneNumber) == "" {
		errs["phone_number"] = "Phone number is required"
	} else if n := len(digits(c.PhoneNumber)); n < 10 || n > 13 {
		errs["phone_number"] = "Please enter a valid phone number"
	}

	return errs
}

// ValidateProof checks an upload's content type and size, in that order, so
// an oversized file of the wrong type reports the type problem.
func ValidateProof(mime string, size int64) error {
	if !proofMIMEs[strings.ToLower(mime)] {
		return ErrProofType
	}
	if size > MaxProofSize {
		return ErrProofTooLarge
	}
	return nil
}

// Preview derives a base64 data URL for image proofs so clients can show a
// thumbnail. Non-image types get no preview. The preview is cosmetic;
// callers must accept the file whether or not one can be derived.
func Preview(mime string, data []byte) string {
	if !strings.HasPrefix(strings.ToLower(mime), "image/") {
		return ""
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// digits strips every non-digit character from s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
