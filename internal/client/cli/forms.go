package cli

import (
	"context"
	"fmt"

	"github.com/XXS1337/rentease/internal/validate"
)

// promptField reads one value and gives immediate feedback, the terminal
// equivalent of validating on blur: invalid input re-prompts with the rule's
// message. Submission-time validation in the services still re-runs every
// rule, so this loop is a convenience, not an enforcement point.
func (a *App) promptField(ctx context.Context, field validate.Field, label string, vc validate.Context) (string, error) {
	for {
		value, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return "", err
		}
		if msg := a.validator.Validate(ctx, field, value, vc); msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		return value, nil
	}
}

// promptEmail additionally runs the availability probe. Probe results that
// were superseded by a newer check are discarded rather than shown.
func (a *App) promptEmail(ctx context.Context, label, originalEmail string) (string, error) {
	for {
		value, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return "", err
		}
		if msg := a.validator.Validate(ctx, validate.FieldEmail, value, validate.Context{}); msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		if value == originalEmail {
			return value, nil
		}
		msg, current := a.probe.Check(ctx, value)
		if !current {
			// A newer check owns the error state; re-read the field.
			continue
		}
		if msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		return value, nil
	}
}

// promptPassword reads without echo and validates; confirm re-prompts until
// the two match.
func (a *App) promptPassword(ctx context.Context, vc validate.Context) (string, error) {
	for {
		pw, err := GetPassword("Enter password", a.out)
		if err != nil {
			return "", err
		}
		value := string(pw)
		if msg := a.validator.Validate(ctx, validate.FieldPassword, value, vc); msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		if value == "" {
			// Blank allowed (edit mode): nothing to confirm.
			return "", nil
		}

		confirm, err := GetPassword("Confirm password", a.out)
		if err != nil {
			return "", err
		}
		if msg := a.validator.Validate(ctx, validate.FieldConfirmPassword, string(confirm), validate.Context{Password: value}); msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		return value, nil
	}
}

// promptOptional reads a value for an edit form; blank keeps the current
// value and returns nil.
func (a *App) promptOptional(ctx context.Context, field validate.Field, label string, vc validate.Context) (*string, error) {
	for {
		value, err := GetSimpleText(a.reader, label+" (blank to keep current)", a.out)
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, nil
		}
		if msg := a.validator.Validate(ctx, field, value, vc); msg != "" {
			fmt.Fprintln(a.out, msg)
			continue
		}
		return &value, nil
	}
}

// printErrors renders an error bag, form-level message first.
func (a *App) printErrors(errs validate.Errors) {
	if msg := errs[validate.General]; msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	for field, msg := range errs {
		if field == validate.General || msg == "" {
			continue
		}
		fmt.Fprintf(a.out, "%s: %s\n", field, msg)
	}
}
