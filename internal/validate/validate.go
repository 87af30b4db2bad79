package validate

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// EmailChecker performs the server round trip behind the email rule.
// It reports whether the address is already registered.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) (exists bool, err error)
}

// Validator evaluates field rules. The zero value is not usable; construct
// with New. Now is injectable so date rules can be tested with a fixed clock.
type Validator struct {
	Emails EmailChecker
	Now    func() time.Time
}

// New returns a Validator using the real clock. emails may be nil when no
// form requests the availability check.
func New(emails EmailChecker) *Validator {
	return &Validator{Emails: emails, Now: time.Now}
}

var (
	// Letters (including the Romanian diacritics the backend accepts),
	// hyphen and space.
	nameRe  = regexp.MustCompile(`^[a-zA-ZăâîșțĂÂÎȘȚ -]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	letterRe  = regexp.MustCompile(`[a-zA-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[^\w\s]`)
)

// User-facing messages. Kept verbatim from the web client so both frontends
// read the same.
const (
	msgEmailFormat      = "Email must be in a valid format."
	msgEmailTaken       = "This email is not available. Please try another or log in if you already have an account."
	msgEmailCheckFailed = "Failed to check email availability. Please try again."
)

// Validate evaluates the rule for field against value and returns a message,
// or "" when the value is valid. Unknown fields are silently valid; that is a
// deliberate permissive default, not an omission.
//
// Only the email rule can block: when vc.CheckEmail is set and the value
// differs from vc.OriginalEmail it performs one availability round trip.
func (v *Validator) Validate(ctx context.Context, field Field, value string, vc Context) string {
	switch field {
	case FieldFirstName, FieldLastName:
		return v.validateName(field, value)
	case FieldEmail:
		return v.validateEmail(ctx, value, vc)
	case FieldPassword:
		return v.validatePassword(value, vc)
	case FieldConfirmPassword:
		if value != vc.Password {
			return "Passwords do not match."
		}
		return ""
	case FieldBirthDate:
		return v.validateBirthDate(value)
	case FieldAdTitle:
		if n := utf8.RuneCountInString(value); n < 5 || n > 60 {
			return "Ad title must be between 5 and 60 characters."
		}
		return ""
	case FieldCity:
		if utf8.RuneCountInString(value) < 2 {
			return "City name must be at least 2 characters."
		}
		return ""
	case FieldStreetName:
		if utf8.RuneCountInString(value) < 2 {
			return "Street name must be at least 2 characters."
		}
		return ""
	case FieldStreetNumber:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err != nil || n < 1 {
			return "Street number must be at least 1."
		}
		return ""
	case FieldAreaSize:
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil || n <= 0 {
			return "Area size must be a valid positive number."
		}
		return ""
	case FieldYearBuilt:
		currentYear := v.Now().Year()
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err != nil || n < 1900 || n > currentYear {
			return "Year built must be between 1900 and the current year."
		}
		return ""
	case FieldRentPrice:
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil || n <= 0 {
			return "Rent price must be greater than zero."
		}
		return ""
	case FieldDateAvailable, FieldUpdatedDateAvailable:
		return v.validateDateAvailable(field, value, vc)
	case FieldImage:
		if value == "" {
			return "Image file is required."
		}
		return ""
	case FieldMessageContent:
		if strings.TrimSpace(value) == "" {
			return "Message content cannot be empty."
		}
		if utf8.RuneCountInString(value) > 1000 {
			return "Message cannot exceed 1000 characters."
		}
		return ""
	default:
		return ""
	}
}

func (v *Validator) validateName(field Field, value string) string {
	label := "First"
	if field == FieldLastName {
		label = "Last"
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < 2 {
		return label + " name must be at least 2 characters."
	}
	if utf8.RuneCountInString(value) > 50 {
		return label + " name must be at most 50 characters."
	}
	if !nameRe.MatchString(value) {
		return label + " name can only contain letters and spaces."
	}
	return ""
}

func (v *Validator) validateEmail(ctx context.Context, value string, vc Context) string {
	if !emailRe.MatchString(value) {
		return msgEmailFormat
	}
	// The availability result is never cached: it is re-verified on every
	// call so a concurrently registered address cannot slip through stale
	// local state.
	if vc.CheckEmail && value != vc.OriginalEmail {
		if v.Emails == nil {
			return msgEmailCheckFailed
		}
		exists, err := v.Emails.CheckEmail(ctx, value)
		if err != nil {
			return msgEmailCheckFailed
		}
		if exists {
			return msgEmailTaken
		}
	}
	return ""
}

func (v *Validator) validatePassword(value string, vc Context) string {
	if value == "" && vc.AllowEmptyPassword {
		return ""
	}
	if utf8.RuneCountInString(value) < 6 {
		return "Password must be at least 6 characters long."
	}
	if !letterRe.MatchString(value) || !digitRe.MatchString(value) || !specialRe.MatchString(value) {
		return "Password must include letters, numbers, and a special character."
	}
	return ""
}

func (v *Validator) validateBirthDate(value string) string {
	birth, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "Birth date is required."
	}
	if age := Age(birth, v.Now()); age < 18 || age > 120 {
		return "Age must be between 18 and 120."
	}
	return ""
}

// validateDateAvailable enforces the availability window, compared as whole
// UTC calendar days. The upper bound is always exactly one year from today,
// recomputed at validation time. The lower bound is today on creation; on
// edit it is the original availability date unless that date has already
// lapsed, in which case only today constrains the value. The asymmetry is
// intentional; collapsing the two branches changes accepted input ranges.
func (v *Validator) validateDateAvailable(field Field, value string, vc Context) string {
	if strings.TrimSpace(value) == "" {
		return "Date available is required."
	}
	selected, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "Date available is required."
	}

	today := NormalizeUTC(v.Now())
	oneYear := today.AddDate(1, 0, 0)
	sel := NormalizeUTC(selected)

	lower, label := today, "today"
	if field == FieldUpdatedDateAvailable && !vc.OriginalDate.IsZero() {
		if orig := NormalizeUTC(vc.OriginalDate); !orig.Before(today) {
			lower, label = orig, "the original date"
		}
	}

	if sel.Before(lower) || sel.After(oneYear) {
		return "Date available must be between " + label + " (" + formatUS(lower) + ") and one year from today (" + formatUS(oneYear) + ")."
	}
	return ""
}
