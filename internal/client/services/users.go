package services

import (
	"context"
	"errors"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

// ErrAdminOnly marks operations restricted to administrators. The server
// enforces the restriction too; the local check just fails faster.
var ErrAdminOnly = errors.New("administrator privileges required")

// UserService covers own-profile maintenance and user administration.
type UserService interface {
	Refresh(ctx context.Context) (*models.User, error)
	UpdateMyProfile(ctx context.Context, form ProfileForm) (validate.Errors, error)
	DeleteMyProfile(ctx context.Context) error

	All(ctx context.Context) ([]models.User, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	EditUser(ctx context.Context, id string, form ProfileForm) (validate.Errors, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	client    api.Client
	session   *session.Manager
	validator *validate.Validator
	log       logging.Logger
}

func NewUserService(client api.Client, sess *session.Manager, validator *validate.Validator, log logging.Logger) UserService {
	return &userService{client: client, session: sess, validator: validator, log: log}
}

// Refresh refetches the current user and updates the cached profile.
func (s *userService) Refresh(ctx context.Context) (*models.User, error) {
	u, err := s.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.session.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// validateProfileForm runs the shared edit-form rules: blank password means
// "unchanged", and the availability round trip is skipped when the email was
// not edited.
func (s *userService) validateProfileForm(ctx context.Context, form ProfileForm) validate.Errors {
	errs := validate.Errors{}
	errs.Set(validate.FieldFirstName, s.validator.Validate(ctx, validate.FieldFirstName, form.FirstName, validate.Context{}))
	errs.Set(validate.FieldLastName, s.validator.Validate(ctx, validate.FieldLastName, form.LastName, validate.Context{}))
	errs.Set(validate.FieldEmail, s.validator.Validate(ctx, validate.FieldEmail, form.Email,
		validate.Context{CheckEmail: true, OriginalEmail: form.OriginalEmail}))
	errs.Set(validate.FieldBirthDate, s.validator.Validate(ctx, validate.FieldBirthDate, form.BirthDate, validate.Context{}))
	errs.Set(validate.FieldPassword, s.validator.Validate(ctx, validate.FieldPassword, form.Password,
		validate.Context{AllowEmptyPassword: true}))
	// The cross-check must see the sibling password even when both are
	// blank, otherwise "leave blank to keep" forms reject silently.
	errs.Set(validate.FieldConfirmPassword, s.validator.Validate(ctx, validate.FieldConfirmPassword, form.ConfirmPassword,
		validate.Context{Password: form.Password}))
	return errs
}

func (s *userService) UpdateMyProfile(ctx context.Context, form ProfileForm) (validate.Errors, error) {
	if errs := s.validateProfileForm(ctx, form); !errs.Valid() {
		return errs.Compact(), nil
	}

	updated, err := s.client.UpdateMyProfile(ctx, api.ProfileUpdate{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		BirthDate: form.BirthDate,
		Password:  form.Password,
	})
	if err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not update the profile. Please try again.")}, nil
	}

	if err := s.session.UpdateUser(ctx, updated); err != nil {
		return nil, err
	}
	return nil, nil
}

// DeleteMyProfile removes the account server-side and ends the session.
func (s *userService) DeleteMyProfile(ctx context.Context) error {
	u := s.session.User()
	if u == nil {
		return session.ErrNotAuthenticated
	}
	if err := s.client.DeleteProfile(ctx, u.ID); err != nil {
		return err
	}
	return s.session.Logout(ctx)
}

func (s *userService) requireAdmin() error {
	u := s.session.User()
	if u == nil {
		return session.ErrNotAuthenticated
	}
	if !u.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

func (s *userService) All(ctx context.Context) ([]models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.AllUsers(ctx)
}

func (s *userService) ByID(ctx context.Context, id string) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.client.UserByID(ctx, id)
}

func (s *userService) EditUser(ctx context.Context, id string, form ProfileForm) (validate.Errors, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if errs := s.validateProfileForm(ctx, form); !errs.Valid() {
		return errs.Compact(), nil
	}

	updated, err := s.client.EditProfile(ctx, id, api.ProfileUpdate{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		BirthDate: form.BirthDate,
		Password:  form.Password,
	})
	if err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not update the user. Please try again.")}, nil
	}

	// Editing one's own record through the admin path still refreshes the
	// cached profile.
	if u := s.session.User(); u != nil && updated != nil && u.ID == updated.ID {
		if err := s.session.UpdateUser(ctx, updated); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// UpdateRole changes a user's role. Self-demotion flips the cached role
// immediately so role-gated commands close within the same interaction.
func (s *userService) UpdateRole(ctx context.Context, id string, role models.Role) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.client.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	if u := s.session.User(); u != nil && u.ID == id {
		return s.session.SetRole(ctx, role)
	}
	return nil
}

// Delete removes a user. Deleting one's own account ends the session.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.client.DeleteProfile(ctx, id); err != nil {
		return err
	}

	if u := s.session.User(); u != nil && u.ID == id {
		return s.session.Logout(ctx)
	}
	return nil
}
