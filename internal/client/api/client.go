// Package api implements the RentEase REST API client: a typed method per
// endpoint over a shared HTTP pipeline, with a response interceptor that
// forces the session closed when the backend reports an expired token.
package api

import (
	"context"

	"github.com/XXS1337/rentease/internal/client/models"
)

// Client is the backend surface the rest of the application talks to.
// Implementations must honor context cancellation on every call.
type Client interface {
	Close() error

	// Auth.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Register(ctx context.Context, req RegisterRequest) error
	CheckEmail(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error

	// Profile / administration.
	Me(ctx context.Context) (*models.User, error)
	UpdateMyProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)
	DeleteProfile(ctx context.Context, userID string) error
	AllUsers(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	EditProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error

	// Flats.
	Flats(ctx context.Context, filter models.FlatFilter) ([]models.Flat, error)
	MyFlats(ctx context.Context) ([]models.Flat, error)
	Flat(ctx context.Context, id string) (*models.Flat, error)
	CreateFlat(ctx context.Context, p FlatPayload) (*models.Flat, error)
	UpdateFlat(ctx context.Context, id string, p FlatPayload) (*models.Flat, error)
	DeleteFlat(ctx context.Context, id string) error
	AddToFavorites(ctx context.Context, flatID string) error
	RemoveFromFavorites(ctx context.Context, flatID string) error

	// Messaging.
	Messages(ctx context.Context, flatID string) ([]models.Message, error)
	SendMessage(ctx context.Context, flatID, content string) (*models.Message, error)

	// AI assistant.
	Chat(ctx context.Context, turns []models.ChatTurn) (string, error)
}

// RegisterRequest is the payload for account creation. BirthDate is a
// calendar date in validate.DateLayout form.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password"`
}

// ProfileUpdate carries edited profile fields. An empty Password means
// "keep the current password".
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password,omitempty"`
}

// FlatPayload is the create/update body for a listing. DateAvailable is a
// calendar date in validate.DateLayout form; ImageFileName is the uploaded
// file reference (content is not transferred by this client).
type FlatPayload struct {
	AdTitle       string  `json:"adTitle"`
	City          string  `json:"city"`
	StreetName    string  `json:"streetName"`
	StreetNumber  int     `json:"streetNumber"`
	AreaSize      float64 `json:"areaSize"`
	HasAC         bool    `json:"hasAC"`
	YearBuilt     int     `json:"yearBuilt"`
	RentPrice     float64 `json:"rentPrice"`
	DateAvailable string  `json:"dateAvailable"`
	ImageFileName string  `json:"image,omitempty"`
}
