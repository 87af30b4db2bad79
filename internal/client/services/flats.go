package services

import (
	"context"
	"strconv"
	"time"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

// Filter error keys. Ranges are validated as pairs, so the messages attach to
// the pair rather than to a single field.
const (
	FilterPrice validate.Field = "price"
	FilterArea  validate.Field = "area"
)

// FlatService covers listing browsing and management plus favorites.
type FlatService interface {
	Browse(ctx context.Context, filter models.FlatFilter) ([]models.Flat, validate.Errors, error)
	MyFlats(ctx context.Context) ([]models.Flat, error)
	View(ctx context.Context, id string) (*models.Flat, error)
	Create(ctx context.Context, form FlatForm) (validate.Errors, error)
	Edit(ctx context.Context, id string, changes FlatChanges) (validate.Errors, error)
	Delete(ctx context.Context, id string) error

	Favorites(ctx context.Context) ([]models.Flat, error)
	AddFavorite(ctx context.Context, flatID string) error
	RemoveFavorite(ctx context.Context, flatID string) error
}

type flatService struct {
	client    api.Client
	session   *session.Manager
	validator *validate.Validator
	log       logging.Logger
}

func NewFlatService(client api.Client, sess *session.Manager, validator *validate.Validator, log logging.Logger) FlatService {
	return &flatService{client: client, session: sess, validator: validator, log: log}
}

// Browse fetches listings matching the filter and joins the favorite flag
// from the cached profile. Inverted ranges are rejected locally.
func (s *flatService) Browse(ctx context.Context, filter models.FlatFilter) ([]models.Flat, validate.Errors, error) {
	errs := validateFilter(filter)
	if !errs.Valid() {
		return nil, errs.Compact(), nil
	}

	flats, err := s.client.Flats(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	s.markFavorites(flats)
	return flats, nil, nil
}

func validateFilter(f models.FlatFilter) validate.Errors {
	errs := validate.Errors{}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		errs.Set(FilterPrice, "Minimum price cannot exceed maximum price.")
	}
	if f.MinArea > 0 && f.MaxArea > 0 && f.MinArea > f.MaxArea {
		errs.Set(FilterArea, "Minimum area cannot exceed maximum area.")
	}
	return errs
}

func (s *flatService) markFavorites(flats []models.Flat) {
	u := s.session.User()
	if u == nil {
		return
	}
	for i := range flats {
		flats[i].Favorite = u.HasFavorite(flats[i].ID)
	}
}

func (s *flatService) MyFlats(ctx context.Context) ([]models.Flat, error) {
	flats, err := s.client.MyFlats(ctx)
	if err != nil {
		return nil, err
	}
	s.markFavorites(flats)
	return flats, nil
}

func (s *flatService) View(ctx context.Context, id string) (*models.Flat, error) {
	flat, err := s.client.Flat(ctx, id)
	if err != nil {
		return nil, err
	}
	if u := s.session.User(); u != nil && flat != nil {
		flat.Favorite = u.HasFavorite(flat.ID)
	}
	return flat, nil
}

// Create validates every listing field and submits. The image rule only
// checks that a filename is present; bytes are handled by the upload service.
func (s *flatService) Create(ctx context.Context, form FlatForm) (validate.Errors, error) {
	errs := validate.Errors{}
	errs.Set(validate.FieldAdTitle, s.validator.Validate(ctx, validate.FieldAdTitle, form.AdTitle, validate.Context{}))
	errs.Set(validate.FieldCity, s.validator.Validate(ctx, validate.FieldCity, form.City, validate.Context{}))
	errs.Set(validate.FieldStreetName, s.validator.Validate(ctx, validate.FieldStreetName, form.StreetName, validate.Context{}))
	errs.Set(validate.FieldStreetNumber, s.validator.Validate(ctx, validate.FieldStreetNumber, form.StreetNumber, validate.Context{}))
	errs.Set(validate.FieldAreaSize, s.validator.Validate(ctx, validate.FieldAreaSize, form.AreaSize, validate.Context{}))
	errs.Set(validate.FieldYearBuilt, s.validator.Validate(ctx, validate.FieldYearBuilt, form.YearBuilt, validate.Context{}))
	errs.Set(validate.FieldRentPrice, s.validator.Validate(ctx, validate.FieldRentPrice, form.RentPrice, validate.Context{}))
	errs.Set(validate.FieldDateAvailable, s.validator.Validate(ctx, validate.FieldDateAvailable, form.DateAvailable, validate.Context{}))
	errs.Set(validate.FieldImage, s.validator.Validate(ctx, validate.FieldImage, form.ImageFileName, validate.Context{}))
	if !errs.Valid() {
		return errs.Compact(), nil
	}

	if _, err := s.client.CreateFlat(ctx, flatPayload(form)); err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not create the listing. Please try again.")}, nil
	}
	return nil, nil
}

// flatPayload converts an already-validated form; parse errors cannot occur
// past validation, so failed conversions degrade to zero values.
func flatPayload(form FlatForm) api.FlatPayload {
	streetNumber, _ := strconv.Atoi(form.StreetNumber)
	areaSize, _ := strconv.ParseFloat(form.AreaSize, 64)
	yearBuilt, _ := strconv.Atoi(form.YearBuilt)
	rentPrice, _ := strconv.ParseFloat(form.RentPrice, 64)

	return api.FlatPayload{
		AdTitle:       form.AdTitle,
		City:          form.City,
		StreetName:    form.StreetName,
		StreetNumber:  streetNumber,
		AreaSize:      areaSize,
		HasAC:         form.HasAC,
		YearBuilt:     yearBuilt,
		RentPrice:     rentPrice,
		DateAvailable: form.DateAvailable,
		ImageFileName: form.ImageFileName,
	}
}

// Edit loads the current listing, applies the edited fields over it,
// validates the result, and submits. Submitting with nothing changed is
// rejected; a changed availability date is validated against the listing's
// original date, which shifts the allowed window.
func (s *flatService) Edit(ctx context.Context, id string, changes FlatChanges) (validate.Errors, error) {
	if changes.Empty() {
		return validate.Errors{validate.General: "No changes to save."}, nil
	}

	current, err := s.client.Flat(ctx, id)
	if err != nil {
		return nil, err
	}
	// A 200 with a null body decodes to a nil flat; treat it as missing.
	if current == nil {
		return nil, api.ErrNotFound
	}

	form := FlatForm{
		AdTitle:       current.AdTitle,
		City:          current.City,
		StreetName:    current.StreetName,
		StreetNumber:  strconv.Itoa(current.StreetNumber),
		AreaSize:      strconv.FormatFloat(current.AreaSize, 'f', -1, 64),
		HasAC:         current.HasAC,
		YearBuilt:     strconv.Itoa(current.YearBuilt),
		RentPrice:     strconv.FormatFloat(current.RentPrice, 'f', -1, 64),
		DateAvailable: current.DateAvailable.UTC().Format(validate.DateLayout),
		ImageFileName: current.Image.FileName,
	}
	applyChanges(&form, changes)

	errs := validate.Errors{}
	errs.Set(validate.FieldAdTitle, s.validator.Validate(ctx, validate.FieldAdTitle, form.AdTitle, validate.Context{}))
	errs.Set(validate.FieldCity, s.validator.Validate(ctx, validate.FieldCity, form.City, validate.Context{}))
	errs.Set(validate.FieldStreetName, s.validator.Validate(ctx, validate.FieldStreetName, form.StreetName, validate.Context{}))
	errs.Set(validate.FieldStreetNumber, s.validator.Validate(ctx, validate.FieldStreetNumber, form.StreetNumber, validate.Context{}))
	errs.Set(validate.FieldAreaSize, s.validator.Validate(ctx, validate.FieldAreaSize, form.AreaSize, validate.Context{}))
	errs.Set(validate.FieldYearBuilt, s.validator.Validate(ctx, validate.FieldYearBuilt, form.YearBuilt, validate.Context{}))
	errs.Set(validate.FieldRentPrice, s.validator.Validate(ctx, validate.FieldRentPrice, form.RentPrice, validate.Context{}))
	if changes.DateAvailable != nil {
		errs.Set(validate.FieldUpdatedDateAvailable, s.validator.Validate(ctx, validate.FieldUpdatedDateAvailable, form.DateAvailable,
			validate.Context{OriginalDate: current.DateAvailable}))
	}
	if !errs.Valid() {
		return errs.Compact(), nil
	}

	if _, err := s.client.UpdateFlat(ctx, id, flatPayload(form)); err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not update the listing. Please try again.")}, nil
	}
	return nil, nil
}

func applyChanges(form *FlatForm, c FlatChanges) {
	if c.AdTitle != nil {
		form.AdTitle = *c.AdTitle
	}
	if c.City != nil {
		form.City = *c.City
	}
	if c.StreetName != nil {
		form.StreetName = *c.StreetName
	}
	if c.StreetNumber != nil {
		form.StreetNumber = *c.StreetNumber
	}
	if c.AreaSize != nil {
		form.AreaSize = *c.AreaSize
	}
	if c.HasAC != nil {
		form.HasAC = *c.HasAC
	}
	if c.YearBuilt != nil {
		form.YearBuilt = *c.YearBuilt
	}
	if c.RentPrice != nil {
		form.RentPrice = *c.RentPrice
	}
	if c.DateAvailable != nil {
		form.DateAvailable = *c.DateAvailable
	}
	if c.ImageFileName != nil {
		form.ImageFileName = *c.ImageFileName
	}
}

func (s *flatService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteFlat(ctx, id)
}

// Favorites lists the flats currently favorited, using the cached profile's
// id set against the full listing.
func (s *flatService) Favorites(ctx context.Context) ([]models.Flat, error) {
	u := s.session.User()
	if u == nil {
		return nil, session.ErrNotAuthenticated
	}

	flats, err := s.client.Flats(ctx, models.FlatFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]models.Flat, 0, len(u.FavoriteFlats))
	for _, f := range flats {
		if u.HasFavorite(f.ID) {
			f.Favorite = true
			out = append(out, f)
		}
	}
	return out, nil
}

// AddFavorite marks a flat as favorite server-side and mirrors the change in
// the cached profile so subsequent views are correct without a refetch.
func (s *flatService) AddFavorite(ctx context.Context, flatID string) error {
	if err := s.client.AddToFavorites(ctx, flatID); err != nil {
		return err
	}

	u := s.session.User()
	if u == nil {
		return nil
	}
	if !u.HasFavorite(flatID) {
		u.FavoriteFlats = append(u.FavoriteFlats, flatID)
		return s.session.UpdateUser(ctx, u)
	}
	return nil
}

func (s *flatService) RemoveFavorite(ctx context.Context, flatID string) error {
	if err := s.client.RemoveFromFavorites(ctx, flatID); err != nil {
		return err
	}

	u := s.session.User()
	if u == nil {
		return nil
	}
	kept := u.FavoriteFlats[:0]
	for _, id := range u.FavoriteFlats {
		if id != flatID {
			kept = append(kept, id)
		}
	}
	u.FavoriteFlats = kept
	return s.session.UpdateUser(ctx, u)
}

// ParseAvailableDate parses a listing availability input for display helpers.
func ParseAvailableDate(value string) (time.Time, error) {
	return time.Parse(validate.DateLayout, value)
}
