package validate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker is a scriptable EmailChecker.
type fakeChecker struct {
	exists bool
	err    error
	calls  int
	last   string
}

func (f *fakeChecker) CheckEmail(_ context.Context, email string) (bool, error) {
	f.calls++
	f.last = email
	return f.exists, f.err
}

// fixedNow pins the clock to 2026-06-15 so date windows are deterministic.
func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
}

func newTestValidator(checker EmailChecker) *Validator {
	v := New(checker)
	v.Now = fixedNow
	return v
}

func TestValidate_Names(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{"valid first name", FieldFirstName, "Ana", ""},
		{"valid with diacritics", FieldFirstName, "Ștefan", ""},
		{"valid with hyphen", FieldLastName, "Popescu-Ionescu", ""},
		{"too short", FieldFirstName, "A", "First name must be at least 2 characters."},
		{"whitespace only", FieldFirstName, "   ", "First name must be at least 2 characters."},
		{"digits rejected", FieldFirstName, "An4", "First name can only contain letters and spaces."},
		{"last name label", FieldLastName, "B", "Last name must be at least 2 characters."},
		{"too long", FieldLastName, strings.Repeat("a", 51), "Last name must be at most 50 characters."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(ctx, tc.field, tc.value, Context{}))
		})
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	assert.Equal(t, "", v.Validate(ctx, FieldEmail, "ana@example.com", Context{}))
	assert.Equal(t, msgEmailFormat, v.Validate(ctx, FieldEmail, "not-an-email", Context{}))
	assert.Equal(t, msgEmailFormat, v.Validate(ctx, FieldEmail, "a b@example.com", Context{}))
	assert.Equal(t, msgEmailFormat, v.Validate(ctx, FieldEmail, "ana@example", Context{}))
}

func TestValidate_EmailAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("taken address reports taken message", func(t *testing.T) {
		checker := &fakeChecker{exists: true}
		v := newTestValidator(checker)

		got := v.Validate(ctx, FieldEmail, "taken@example.com", Context{CheckEmail: true})
		assert.Equal(t, msgEmailTaken, got)
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("free address passes", func(t *testing.T) {
		checker := &fakeChecker{}
		v := newTestValidator(checker)

		assert.Equal(t, "", v.Validate(ctx, FieldEmail, "free@example.com", Context{CheckEmail: true}))
	})

	t.Run("check failure is its own message, not taken", func(t *testing.T) {
		checker := &fakeChecker{err: errors.New("boom")}
		v := newTestValidator(checker)

		got := v.Validate(ctx, FieldEmail, "ana@example.com", Context{CheckEmail: true})
		assert.Equal(t, msgEmailCheckFailed, got)
	})

	t.Run("unchanged email skips the round trip", func(t *testing.T) {
		checker := &fakeChecker{exists: true}
		v := newTestValidator(checker)

		got := v.Validate(ctx, FieldEmail, "same@example.com",
			Context{CheckEmail: true, OriginalEmail: "same@example.com"})
		assert.Equal(t, "", got)
		assert.Equal(t, 0, checker.calls)
	})

	t.Run("format failure short-circuits before the round trip", func(t *testing.T) {
		checker := &fakeChecker{exists: true}
		v := newTestValidator(checker)

		assert.Equal(t, msgEmailFormat, v.Validate(ctx, FieldEmail, "bad", Context{CheckEmail: true}))
		assert.Equal(t, 0, checker.calls)
	})
}

func TestValidate_Password(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		vc    Context
		want  string
	}{
		{"valid", "abc123!", Context{}, ""},
		{"too short", "a1!", Context{}, "Password must be at least 6 characters long."},
		{"letters only", "abcdefg", Context{}, "Password must include letters, numbers, and a special character."},
		{"no special", "abc12345", Context{}, "Password must include letters, numbers, and a special character."},
		{"no letters", "123456!!", Context{}, "Password must include letters, numbers, and a special character."},
		{"blank rejected by default", "", Context{}, "Password must be at least 6 characters long."},
		{"blank allowed in edit mode", "", Context{AllowEmptyPassword: true}, ""},
		{"non-blank still checked in edit mode", "short", Context{AllowEmptyPassword: true}, "Password must be at least 6 characters long."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(ctx, FieldPassword, tc.value, tc.vc))
		})
	}
}

func TestValidate_ConfirmPassword(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	assert.Equal(t, "", v.Validate(ctx, FieldConfirmPassword, "abc123!", Context{Password: "abc123!"}))
	assert.Equal(t, "Passwords do not match.", v.Validate(ctx, FieldConfirmPassword, "abc123?", Context{Password: "abc123!"}))
	// Both blank on an edit form: matching, so no error.
	assert.Equal(t, "", v.Validate(ctx, FieldConfirmPassword, "", Context{Password: ""}))
}

func TestValidate_BirthDate(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"adult", "1990-01-01", ""},
		{"exactly 18 today", "2008-06-15", ""},
		{"18 tomorrow", "2008-06-16", "Age must be between 18 and 120."},
		{"over 120", "1900-01-01", "Age must be between 18 and 120."},
		{"exactly 120", "1906-06-15", ""},
		{"missing", "", "Birth date is required."},
		{"garbage", "not-a-date", "Birth date is required."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(ctx, FieldBirthDate, tc.value, Context{}))
		})
	}
}

func TestValidate_FlatFields(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{"title ok", FieldAdTitle, "Sunny studio", ""},
		{"title too short", FieldAdTitle, "Hut", "Ad title must be between 5 and 60 characters."},
		{"city ok", FieldCity, "Cluj", ""},
		{"city too short", FieldCity, "C", "City name must be at least 2 characters."},
		{"street name too short", FieldStreetName, "X", "Street name must be at least 2 characters."},
		{"street number ok", FieldStreetNumber, "12", ""},
		{"street number zero", FieldStreetNumber, "0", "Street number must be at least 1."},
		{"street number garbage", FieldStreetNumber, "12b", "Street number must be at least 1."},
		{"area ok", FieldAreaSize, "45.5", ""},
		{"area zero", FieldAreaSize, "0", "Area size must be a valid positive number."},
		{"year ok", FieldYearBuilt, "1998", ""},
		{"year current", FieldYearBuilt, "2026", ""},
		{"year future", FieldYearBuilt, "2027", "Year built must be between 1900 and the current year."},
		{"year ancient", FieldYearBuilt, "1899", "Year built must be between 1900 and the current year."},
		{"rent ok", FieldRentPrice, "850", ""},
		{"rent zero", FieldRentPrice, "0", "Rent price must be greater than zero."},
		{"image ok", FieldImage, "flat.jpg", ""},
		{"image missing", FieldImage, "", "Image file is required."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(ctx, tc.field, tc.value, Context{}))
		})
	}
}

func TestValidate_DateAvailable_Creation(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	// Today is 2026-06-15; the window is [today, today+1y].
	assert.Equal(t, "", v.Validate(ctx, FieldDateAvailable, "2026-06-15", Context{}))
	assert.Equal(t, "", v.Validate(ctx, FieldDateAvailable, "2027-06-15", Context{}))

	want := "Date available must be between today (6/15/2026) and one year from today (6/15/2027)."
	assert.Equal(t, want, v.Validate(ctx, FieldDateAvailable, "2026-06-14", Context{}))
	assert.Equal(t, want, v.Validate(ctx, FieldDateAvailable, "2027-06-16", Context{}))

	assert.Equal(t, "Date available is required.", v.Validate(ctx, FieldDateAvailable, "", Context{}))
	assert.Equal(t, "Date available is required.", v.Validate(ctx, FieldDateAvailable, "15/06/2026", Context{}))
}

func TestValidate_DateAvailable_Edit(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	t.Run("future original date raises the lower bound", func(t *testing.T) {
		vc := Context{OriginalDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}

		assert.Equal(t, "", v.Validate(ctx, FieldUpdatedDateAvailable, "2026-08-01", vc))
		assert.Equal(t, "", v.Validate(ctx, FieldUpdatedDateAvailable, "2026-09-10", vc))

		want := "Date available must be between the original date (8/1/2026) and one year from today (6/15/2027)."
		// Today is fine for a fresh listing but not for this edit.
		assert.Equal(t, want, v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-15", vc))
		assert.Equal(t, want, v.Validate(ctx, FieldUpdatedDateAvailable, "2026-07-31", vc))
	})

	t.Run("lapsed original date falls back to today", func(t *testing.T) {
		vc := Context{OriginalDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}

		assert.Equal(t, "", v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-15", vc))

		want := "Date available must be between today (6/15/2026) and one year from today (6/15/2027)."
		assert.Equal(t, want, v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-14", vc))
		// The lapsed original date does not re-open the past.
		assert.Equal(t, want, v.Validate(ctx, FieldUpdatedDateAvailable, "2026-01-10", vc))
	})

	t.Run("original date equal to today keeps the original-date label", func(t *testing.T) {
		vc := Context{OriginalDate: time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC)}

		assert.Equal(t, "", v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-15", vc))

		got := v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-14", vc)
		assert.Equal(t, "Date available must be between the original date (6/15/2026) and one year from today (6/15/2027).", got)
	})

	t.Run("upper bound never moves with the original date", func(t *testing.T) {
		vc := Context{OriginalDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)}
		got := v.Validate(ctx, FieldUpdatedDateAvailable, "2027-07-01", vc)
		require.NotEmpty(t, got)
		assert.Contains(t, got, "one year from today (6/15/2027)")
	})

	t.Run("zero original date behaves like creation", func(t *testing.T) {
		assert.Equal(t, "", v.Validate(ctx, FieldUpdatedDateAvailable, "2026-06-15", Context{}))
	})
}

func TestValidate_MessageContent(t *testing.T) {
	v := newTestValidator(nil)
	ctx := context.Background()

	assert.Equal(t, "", v.Validate(ctx, FieldMessageContent, "Is the flat still available?", Context{}))
	assert.Equal(t, "Message content cannot be empty.", v.Validate(ctx, FieldMessageContent, "   ", Context{}))

	long := make([]rune, 1001)
	for i := range long {
		long[i] = 'x'
	}
	assert.Equal(t, "Message cannot exceed 1000 characters.", v.Validate(ctx, FieldMessageContent, string(long), Context{}))
}

func TestValidate_UnknownFieldIsValid(t *testing.T) {
	v := newTestValidator(nil)
	assert.Equal(t, "", v.Validate(context.Background(), Field("somethingElse"), "anything", Context{}))
}
