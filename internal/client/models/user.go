// Package models defines client-side views of RentEase API resources.
package models

import (
	"strings"
	"time"
)

// Role is the access level assigned to an account by the backend.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the cached copy of a backend user profile. It is owned by the
// backend; staleness is bounded only by explicit refetches.
type User struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	BirthDate     time.Time `json:"birthDate"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created"`
	FavoriteFlats []string  `json:"favoriteFlats"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasFavorite reports whether the given flat is in the cached favorites list.
func (u User) HasFavorite(flatID string) bool {
	for _, id := range u.FavoriteFlats {
		if id == flatID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate the result without
// affecting the session's cached profile.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FavoriteFlats = append([]string(nil), u.FavoriteFlats...)
	return &c
}
