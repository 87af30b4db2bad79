// Package validate implements the RentEase form-validation rules: one rule
// per field kind, returning a human-readable message or the empty string for
// a valid value. The empty string is the canonical "no error" sentinel.
package validate

import "time"

// Field identifies a form field kind. Validation dispatches on the field,
// not on which form it appears in, so the same rule applies everywhere.
type Field string

const (
	FieldFirstName            Field = "firstName"
	FieldLastName             Field = "lastName"
	FieldEmail                Field = "email"
	FieldPassword             Field = "password"
	FieldConfirmPassword      Field = "confirmPassword"
	FieldBirthDate            Field = "birthDate"
	FieldAdTitle              Field = "adTitle"
	FieldCity                 Field = "city"
	FieldStreetName           Field = "streetName"
	FieldStreetNumber         Field = "streetNumber"
	FieldAreaSize             Field = "areaSize"
	FieldYearBuilt            Field = "yearBuilt"
	FieldRentPrice            Field = "rentPrice"
	FieldDateAvailable        Field = "dateAvailable"
	FieldUpdatedDateAvailable Field = "updatedDateAvailable"
	FieldImage                Field = "image"
	FieldMessageContent       Field = "messageContent"
)

// General is the reserved key for form-level errors that do not belong to a
// single field (e.g. a server failure at submit time).
const General Field = "general"

// Context carries cross-field facts some rules need. It is ephemeral,
// built per validation call.
type Context struct {
	// Password is the sibling password value, required for confirmPassword.
	Password string

	// OriginalEmail skips the availability round trip when the value is
	// unchanged on an edit form.
	OriginalEmail string

	// OriginalDate is the flat's previously committed availability date,
	// used by the updatedDateAvailable rule.
	OriginalDate time.Time

	// AllowEmptyPassword treats a blank password as "keep current password".
	AllowEmptyPassword bool

	// CheckEmail opts in to the server round trip for email availability.
	CheckEmail bool
}
