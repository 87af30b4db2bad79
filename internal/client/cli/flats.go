package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/services"
	"github.com/XXS1337/rentease/internal/validate"
)

func (a *App) browseFlats(ctx context.Context, withFilter bool) {
	filter := models.FlatFilter{}
	if withFilter {
		var err error
		if filter, err = a.promptFilter(); err != nil {
			return
		}
	}

	flats, errs, err := a.flats.Browse(ctx, filter)
	if err != nil {
		a.log.Error(ctx, "listing fetch failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	a.printFlats(flats)
}

func (a *App) promptFilter() (models.FlatFilter, error) {
	f := models.FlatFilter{}

	city, err := GetSimpleText(a.reader, "City (blank for any)", a.out)
	if err != nil {
		return f, err
	}
	f.City = city

	if f.MinPrice, err = a.promptNumber("Min price (blank for none)"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = a.promptNumber("Max price (blank for none)"); err != nil {
		return f, err
	}
	if f.MinArea, err = a.promptNumber("Min area (blank for none)"); err != nil {
		return f, err
	}
	if f.MaxArea, err = a.promptNumber("Max area (blank for none)"); err != nil {
		return f, err
	}

	sort, err := GetSimpleText(a.reader, "Sort (cityAsc cityDesc priceAsc priceDesc areaAsc areaDesc, blank for none)", a.out)
	if err != nil {
		return f, err
	}
	f.Sort = models.SortOption(sort)
	return f, nil
}

func (a *App) promptNumber(label string) (float64, error) {
	for {
		value, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return 0, err
		}
		if value == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n < 0 {
			fmt.Fprintln(a.out, "Enter a non-negative number or leave blank.")
			continue
		}
		return n, nil
	}
}

func (a *App) printFlats(flats []models.Flat) {
	if len(flats) == 0 {
		fmt.Fprintln(a.out, "No flats found.")
		return
	}
	for _, f := range flats {
		marker := " "
		if f.Favorite {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s — %s, %s %d, %.0f m², %.0f/month, available %s\n",
			marker, f.ID, f.AdTitle, f.City, f.StreetName, f.StreetNumber,
			f.AreaSize, f.RentPrice, f.DateAvailable.UTC().Format(validate.DateLayout))
	}
}

func (a *App) viewFlat(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: view <flat-id>")
	if !ok {
		return
	}
	f, err := a.flats.View(ctx, id)
	if err != nil {
		a.log.Error(ctx, "flat fetch failed", "err", err)
		return
	}
	if f == nil {
		fmt.Fprintln(a.out, "Flat not found.")
		return
	}

	fmt.Fprintf(a.out, "%s\n", f.AdTitle)
	fmt.Fprintf(a.out, "  Address:   %s, %s %d\n", f.City, f.StreetName, f.StreetNumber)
	fmt.Fprintf(a.out, "  Area:      %.0f m² (built %d, AC: %v)\n", f.AreaSize, f.YearBuilt, f.HasAC)
	fmt.Fprintf(a.out, "  Rent:      %.0f/month\n", f.RentPrice)
	fmt.Fprintf(a.out, "  Available: %s\n", f.DateAvailable.UTC().Format(validate.DateLayout))
	if f.Image.URL != "" {
		fmt.Fprintf(a.out, "  Photo:     %s\n", f.Image.URL)
	}
	if f.Favorite {
		fmt.Fprintln(a.out, "  In your favorites.")
	}
}

func (a *App) myFlats(ctx context.Context) {
	flats, err := a.flats.MyFlats(ctx)
	if err != nil {
		a.log.Error(ctx, "my-flats fetch failed", "err", err)
		return
	}
	a.printFlats(flats)
}

func (a *App) newFlat(ctx context.Context) {
	form := services.FlatForm{}
	var err error

	if form.AdTitle, err = a.promptField(ctx, validate.FieldAdTitle, "Ad title", validate.Context{}); err != nil {
		return
	}
	if form.City, err = a.promptField(ctx, validate.FieldCity, "City", validate.Context{}); err != nil {
		return
	}
	if form.StreetName, err = a.promptField(ctx, validate.FieldStreetName, "Street name", validate.Context{}); err != nil {
		return
	}
	if form.StreetNumber, err = a.promptField(ctx, validate.FieldStreetNumber, "Street number", validate.Context{}); err != nil {
		return
	}
	if form.AreaSize, err = a.promptField(ctx, validate.FieldAreaSize, "Area size (m²)", validate.Context{}); err != nil {
		return
	}
	if form.HasAC, err = GetConfirmation(a.reader, "Has air conditioning?", a.out); err != nil {
		return
	}
	if form.YearBuilt, err = a.promptField(ctx, validate.FieldYearBuilt, "Year built", validate.Context{}); err != nil {
		return
	}
	if form.RentPrice, err = a.promptField(ctx, validate.FieldRentPrice, "Rent price", validate.Context{}); err != nil {
		return
	}
	if form.DateAvailable, err = a.promptField(ctx, validate.FieldDateAvailable, "Date available (YYYY-MM-DD)", validate.Context{}); err != nil {
		return
	}
	if form.ImageFileName, err = a.promptField(ctx, validate.FieldImage, "Image file name", validate.Context{}); err != nil {
		return
	}

	errs, err := a.flats.Create(ctx, form)
	if err != nil {
		a.log.Error(ctx, "flat creation failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Listing created!")
}

// editFlat collects only the fields the user wants to change; blank answers
// keep the current value. The availability date is validated against the
// listing's original date by the service.
func (a *App) editFlat(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: editflat <flat-id>")
	if !ok {
		return
	}

	changes := services.FlatChanges{}
	var err error

	if changes.AdTitle, err = a.promptOptional(ctx, validate.FieldAdTitle, "Ad title", validate.Context{}); err != nil {
		return
	}
	if changes.City, err = a.promptOptional(ctx, validate.FieldCity, "City", validate.Context{}); err != nil {
		return
	}
	if changes.StreetName, err = a.promptOptional(ctx, validate.FieldStreetName, "Street name", validate.Context{}); err != nil {
		return
	}
	if changes.StreetNumber, err = a.promptOptional(ctx, validate.FieldStreetNumber, "Street number", validate.Context{}); err != nil {
		return
	}
	if changes.AreaSize, err = a.promptOptional(ctx, validate.FieldAreaSize, "Area size (m²)", validate.Context{}); err != nil {
		return
	}
	if changes.YearBuilt, err = a.promptOptional(ctx, validate.FieldYearBuilt, "Year built", validate.Context{}); err != nil {
		return
	}
	if changes.RentPrice, err = a.promptOptional(ctx, validate.FieldRentPrice, "Rent price", validate.Context{}); err != nil {
		return
	}
	// Window depends on the original date, which the service looks up;
	// only the format is pre-checked here.
	if changes.DateAvailable, err = a.promptDateOptional(); err != nil {
		return
	}
	if changes.ImageFileName, err = a.promptOptional(ctx, validate.FieldImage, "Image file name", validate.Context{}); err != nil {
		return
	}

	errs, err := a.flats.Edit(ctx, id, changes)
	if err != nil {
		a.log.Error(ctx, "flat update failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Listing updated!")
}

func (a *App) promptDateOptional() (*string, error) {
	for {
		value, err := GetSimpleText(a.reader, "Date available (YYYY-MM-DD, blank to keep current)", a.out)
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, nil
		}
		if _, err := services.ParseAvailableDate(value); err != nil {
			fmt.Fprintln(a.out, "Enter a date as YYYY-MM-DD.")
			continue
		}
		return &value, nil
	}
}

func (a *App) deleteFlat(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: rmflat <flat-id>")
	if !ok {
		return
	}
	confirmed, err := GetConfirmation(a.reader, "Delete this listing?", a.out)
	if err != nil || !confirmed {
		return
	}
	if err := a.flats.Delete(ctx, id); err != nil {
		a.log.Error(ctx, "flat deletion failed", "err", err)
		return
	}
	fmt.Fprintln(a.out, "Listing deleted.")
}

func (a *App) requireArg(args []string, usage string) (string, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return "", false
	}
	return args[0], true
}
