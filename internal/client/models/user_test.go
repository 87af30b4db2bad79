package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_FullName(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "Pop"}
	assert.Equal(t, "Ana Pop", u.FullName())

	assert.Equal(t, "Ana", (&User{FirstName: "Ana"}).FullName())
}

func TestUser_HasFavorite(t *testing.T) {
	u := User{FavoriteFlats: []string{"f1", "f2"}}
	assert.True(t, u.HasFavorite("f2"))
	assert.False(t, u.HasFavorite("f3"))

	// The read-only helpers work on unaddressable values too.
	assert.False(t, User{}.HasFavorite("f1"))
	assert.False(t, User{}.IsAdmin())
	assert.Empty(t, User{}.FullName())
}

func TestUser_CloneIsDeep(t *testing.T) {
	u := &User{ID: "u1", FavoriteFlats: []string{"f1"}}

	c := u.Clone()
	c.FavoriteFlats[0] = "mutated"
	c.FavoriteFlats = append(c.FavoriteFlats, "f2")

	assert.Equal(t, []string{"f1"}, u.FavoriteFlats)

	var nilUser *User
	assert.Nil(t, nilUser.Clone())
}

func TestUser_DecodesBackendShape(t *testing.T) {
	raw := `{
		"_id": "665f1",
		"firstName": "Ana",
		"lastName": "Pop",
		"email": "ana@example.com",
		"role": "admin",
		"favoriteFlats": ["f1", "f2"]
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	assert.Equal(t, "665f1", u.ID)
	assert.True(t, u.IsAdmin())
	assert.True(t, u.HasFavorite("f2"))
}
