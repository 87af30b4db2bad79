// Package services contains the application services of the RentEase client:
// they validate user input, call the API client, and keep the session's
// cached profile consistent with what the backend accepted.
package services

// RegisterForm is the raw input of the registration form. All values are
// strings as entered; validation and parsing happen in the services.
type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	BirthDate       string
	Password        string
	ConfirmPassword string
}

// ProfileForm is the raw input of the profile-edit form. An empty Password
// means "keep the current password". OriginalEmail is the address on file,
// used to skip the availability round trip when unchanged.
type ProfileForm struct {
	FirstName       string
	LastName        string
	Email           string
	BirthDate       string
	Password        string
	ConfirmPassword string
	OriginalEmail   string
}

// FlatForm is the raw input of the new-listing form.
type FlatForm struct {
	AdTitle       string
	City          string
	StreetName    string
	StreetNumber  string
	AreaSize      string
	HasAC         bool
	YearBuilt     string
	RentPrice     string
	DateAvailable string
	ImageFileName string
}

// FlatChanges carries only the fields the user actually edited; nil means
// "unchanged". Edit submission requires at least one non-nil field.
type FlatChanges struct {
	AdTitle       *string
	City          *string
	StreetName    *string
	StreetNumber  *string
	AreaSize      *string
	HasAC         *bool
	YearBuilt     *string
	RentPrice     *string
	DateAvailable *string
	ImageFileName *string
}

// Empty reports whether no field was edited.
func (c FlatChanges) Empty() bool {
	return c.AdTitle == nil && c.City == nil && c.StreetName == nil &&
		c.StreetNumber == nil && c.AreaSize == nil && c.HasAC == nil &&
		c.YearBuilt == nil && c.RentPrice == nil && c.DateAvailable == nil &&
		c.ImageFileName == nil
}
