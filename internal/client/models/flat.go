package models

import (
	"fmt"
	"net/url"
	"time"
)

// Image references an uploaded listing photo. Only the filename and the
// serving URL are known client-side; bytes live in external storage.
type Image struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// Flat is a rental listing as returned by the backend.
type Flat struct {
	ID            string    `json:"_id"`
	OwnerID       string    `json:"ownerID"`
	AdTitle       string    `json:"adTitle"`
	City          string    `json:"city"`
	StreetName    string    `json:"streetName"`
	StreetNumber  int       `json:"streetNumber"`
	AreaSize      float64   `json:"areaSize"`
	HasAC         bool      `json:"hasAC"`
	YearBuilt     int       `json:"yearBuilt"`
	RentPrice     float64   `json:"rentPrice"`
	DateAvailable time.Time `json:"dateAvailable"`
	Image         Image     `json:"image"`

	// Favorite is joined client-side from the cached profile, never sent
	// by the server.
	Favorite bool `json:"-"`
}

// SortOption is a browse-ordering choice offered by the UI.
type SortOption string

const (
	SortNone      SortOption = ""
	SortCityAsc   SortOption = "cityAsc"
	SortCityDesc  SortOption = "cityDesc"
	SortPriceAsc  SortOption = "priceAsc"
	SortPriceDesc SortOption = "priceDesc"
	SortAreaAsc   SortOption = "areaAsc"
	SortAreaDesc  SortOption = "areaDesc"
)

// QueryValue maps a SortOption to the backend's sort parameter, where a
// leading '-' means descending.
func (s SortOption) QueryValue() string {
	switch s {
	case SortCityAsc:
		return "city"
	case SortCityDesc:
		return "-city"
	case SortPriceAsc:
		return "rentPrice"
	case SortPriceDesc:
		return "-rentPrice"
	case SortAreaAsc:
		return "areaSize"
	case SortAreaDesc:
		return "-areaSize"
	default:
		return ""
	}
}

// FlatFilter narrows a flat listing query. Zero values mean "no constraint".
type FlatFilter struct {
	City     string
	MinPrice float64
	MaxPrice float64
	MinArea  float64
	MaxArea  float64
	Sort     SortOption
}

// Defaults applied when only one end of a range is given, matching what the
// backend expects for its "min-max" range parameters.
const (
	defaultMaxPrice = 10000
	defaultMaxArea  = 1000
)

// Query encodes the filter as backend query parameters. Price and area ranges
// are sent as "min-max" strings.
func (f FlatFilter) Query() url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		max := f.MaxPrice
		if max == 0 {
			max = defaultMaxPrice
		}
		q.Set("rentPrice", fmt.Sprintf("%g-%g", f.MinPrice, max))
	}
	if f.MinArea > 0 || f.MaxArea > 0 {
		max := f.MaxArea
		if max == 0 {
			max = defaultMaxArea
		}
		q.Set("areaSize", fmt.Sprintf("%g-%g", f.MinArea, max))
	}
	if s := f.Sort.QueryValue(); s != "" {
		q.Set("sort", s)
	}
	return q
}
