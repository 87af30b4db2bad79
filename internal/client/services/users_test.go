package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

func adminUser() *models.User {
	return &models.User{ID: "a1", FirstName: "Dana", LastName: "Ionescu", Email: "dana@example.com", Role: models.RoleAdmin}
}

func validProfileForm() ProfileForm {
	return ProfileForm{
		FirstName:     "Dana",
		LastName:      "Ionescu",
		Email:         "dana@example.com",
		BirthDate:     "1985-03-20",
		OriginalEmail: "dana@example.com",
	}
}

func TestUsers_AdminGuard(t *testing.T) {
	client := &fakeClient{}
	v := newTestValidator(client)

	t.Run("anonymous", func(t *testing.T) {
		svc := NewUserService(client, loggedInSession(t, nil), v, logging.NewNopLogger())
		_, err := svc.All(context.Background())
		assert.Error(t, err)
	})

	t.Run("plain user", func(t *testing.T) {
		sess := loggedInSession(t, &models.User{ID: "u1", Email: "u@b.co", Role: models.RoleUser})
		svc := NewUserService(client, sess, v, logging.NewNopLogger())
		_, err := svc.All(context.Background())
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("admin passes", func(t *testing.T) {
		c := &fakeClient{
			allUsersFn: func(context.Context) ([]models.User, error) {
				return []models.User{*adminUser()}, nil
			},
		}
		svc := NewUserService(c, loggedInSession(t, adminUser()), newTestValidator(c), logging.NewNopLogger())
		users, err := svc.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUsers_UpdateMyProfile(t *testing.T) {
	t.Run("blank password means keep current", func(t *testing.T) {
		var got api.ProfileUpdate
		client := &fakeClient{
			updateMeFn: func(_ context.Context, upd api.ProfileUpdate) (*models.User, error) {
				got = upd
				u := adminUser()
				u.FirstName = upd.FirstName
				return u, nil
			},
		}
		sess := loggedInSession(t, adminUser())
		svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

		form := validProfileForm()
		form.FirstName = "Diana"

		errs, err := svc.UpdateMyProfile(context.Background(), form)
		require.NoError(t, err)
		require.True(t, errs.Valid())
		assert.Empty(t, got.Password)
		assert.Equal(t, "Diana", sess.User().FirstName)
	})

	t.Run("non-blank password is validated", func(t *testing.T) {
		client := &fakeClient{}
		svc := NewUserService(client, loggedInSession(t, adminUser()), newTestValidator(client), logging.NewNopLogger())

		form := validProfileForm()
		form.Password = "weak"
		form.ConfirmPassword = "weak"

		errs, err := svc.UpdateMyProfile(context.Background(), form)
		require.NoError(t, err)
		assert.NotEmpty(t, errs[validate.FieldPassword])
	})

	t.Run("unchanged email skips availability probe", func(t *testing.T) {
		probed := false
		client := &fakeClient{
			checkEmailFn: func(context.Context, string) (bool, error) {
				probed = true
				return true, nil
			},
			updateMeFn: func(context.Context, api.ProfileUpdate) (*models.User, error) {
				return adminUser(), nil
			},
		}
		svc := NewUserService(client, loggedInSession(t, adminUser()), newTestValidator(client), logging.NewNopLogger())

		errs, err := svc.UpdateMyProfile(context.Background(), validProfileForm())
		require.NoError(t, err)
		assert.True(t, errs.Valid())
		assert.False(t, probed)
	})

	t.Run("changed email is probed", func(t *testing.T) {
		client := &fakeClient{
			checkEmailFn: func(context.Context, string) (bool, error) { return true, nil },
		}
		svc := NewUserService(client, loggedInSession(t, adminUser()), newTestValidator(client), logging.NewNopLogger())

		form := validProfileForm()
		form.Email = "new@example.com"

		errs, err := svc.UpdateMyProfile(context.Background(), form)
		require.NoError(t, err)
		assert.Contains(t, errs[validate.FieldEmail], "not available")
	})
}

func TestUsers_DeleteMyProfileEndsSession(t *testing.T) {
	var deletedID string
	client := &fakeClient{
		deleteProfileFn: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	sess := loggedInSession(t, adminUser())
	svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

	require.NoError(t, svc.DeleteMyProfile(context.Background()))
	assert.Equal(t, "a1", deletedID)
	assert.False(t, sess.Authenticated())
}

func TestUsers_UpdateRole(t *testing.T) {
	t.Run("other user leaves own role alone", func(t *testing.T) {
		client := &fakeClient{
			updateRoleFn: func(context.Context, string, models.Role) error { return nil },
		}
		sess := loggedInSession(t, adminUser())
		svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

		require.NoError(t, svc.UpdateRole(context.Background(), "u9", models.RoleAdmin))
		assert.True(t, sess.User().IsAdmin())
	})

	t.Run("self-demotion flips the cached role immediately", func(t *testing.T) {
		client := &fakeClient{
			updateRoleFn: func(context.Context, string, models.Role) error { return nil },
		}
		sess := loggedInSession(t, adminUser())
		svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

		require.NoError(t, svc.UpdateRole(context.Background(), "a1", models.RoleUser))
		assert.False(t, sess.User().IsAdmin())

		// The demoted session loses admin operations on the next call.
		_, err := svc.All(context.Background())
		assert.ErrorIs(t, err, ErrAdminOnly)
	})
}

func TestUsers_DeleteOwnAccountLogsOut(t *testing.T) {
	client := &fakeClient{
		deleteProfileFn: func(context.Context, string) error { return nil },
	}
	sess := loggedInSession(t, adminUser())
	svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.False(t, sess.Authenticated())
}

func TestUsers_DeleteOtherKeepsSession(t *testing.T) {
	client := &fakeClient{
		deleteProfileFn: func(context.Context, string) error { return nil },
	}
	sess := loggedInSession(t, adminUser())
	svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

	require.NoError(t, svc.Delete(context.Background(), "u9"))
	assert.True(t, sess.Authenticated())
}

func TestUsers_EditUserRefreshesOwnCachedProfile(t *testing.T) {
	client := &fakeClient{
		editProfileFn: func(_ context.Context, id string, upd api.ProfileUpdate) (*models.User, error) {
			u := adminUser()
			u.FirstName = upd.FirstName
			return u, nil
		},
	}
	sess := loggedInSession(t, adminUser())
	svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

	form := validProfileForm()
	form.FirstName = "Delia"

	errs, err := svc.EditUser(context.Background(), "a1", form)
	require.NoError(t, err)
	require.True(t, errs.Valid())
	assert.Equal(t, "Delia", sess.User().FirstName)
}

func TestUsers_RefreshUpdatesCachedProfile(t *testing.T) {
	fresh := adminUser()
	fresh.FavoriteFlats = []string{"f7"}
	client := &fakeClient{
		meFn: func(context.Context) (*models.User, error) { return fresh, nil },
	}
	sess := loggedInSession(t, adminUser())
	svc := NewUserService(client, sess, newTestValidator(client), logging.NewNopLogger())

	u, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, u.HasFavorite("f7"))
	assert.True(t, sess.User().HasFavorite("f7"))
}
