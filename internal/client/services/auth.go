package services

import (
	"context"
	"errors"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

// AuthService drives the authentication flows. Methods that submit a form
// return a validation-error bag; a non-empty bag means the submission was
// rejected before or by the server and the error return is nil.
type AuthService interface {
	Login(ctx context.Context, email, password string) (validate.Errors, error)
	Register(ctx context.Context, form RegisterForm) (validate.Errors, error)
	Logout(ctx context.Context) error
	Rehydrate(ctx context.Context)
	ForgotPassword(ctx context.Context, email string) (validate.Errors, error)
	ResetPassword(ctx context.Context, token, password, confirm string) (validate.Errors, error)
}

type authService struct {
	client    api.Client
	session   *session.Manager
	validator *validate.Validator
	log       logging.Logger
}

func NewAuthService(client api.Client, sess *session.Manager, validator *validate.Validator, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, validator: validator, log: log}
}

// Login validates credentials locally, then exchanges them for a user+token
// pair and installs both in the session atomically. Server rejections come
// back under the general key, never as a hard error.
func (s *authService) Login(ctx context.Context, email, password string) (validate.Errors, error) {
	errs := validate.Errors{}
	errs.Set(validate.FieldEmail, s.validator.Validate(ctx, validate.FieldEmail, email, validate.Context{}))
	errs.Set(validate.FieldPassword, s.validator.Validate(ctx, validate.FieldPassword, password, validate.Context{}))
	if !errs.Valid() {
		return errs.Compact(), nil
	}

	user, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return validate.Errors{validate.General: loginFailureMessage(err)}, nil
	}

	if err := s.session.Login(ctx, user, token); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "logged in", "user", user.Email)
	return nil, nil
}

func loginFailureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "Invalid email or password."
	}
	return "Login failed. Please try again."
}

// Register validates the full field set, including the email-availability
// round trip and the confirm-password cross-check, before creating the
// account. Registration does not log the user in.
func (s *authService) Register(ctx context.Context, form RegisterForm) (validate.Errors, error) {
	errs := validate.Errors{}
	errs.Set(validate.FieldFirstName, s.validator.Validate(ctx, validate.FieldFirstName, form.FirstName, validate.Context{}))
	errs.Set(validate.FieldLastName, s.validator.Validate(ctx, validate.FieldLastName, form.LastName, validate.Context{}))
	errs.Set(validate.FieldEmail, s.validator.Validate(ctx, validate.FieldEmail, form.Email, validate.Context{CheckEmail: true}))
	errs.Set(validate.FieldBirthDate, s.validator.Validate(ctx, validate.FieldBirthDate, form.BirthDate, validate.Context{}))
	errs.Set(validate.FieldPassword, s.validator.Validate(ctx, validate.FieldPassword, form.Password, validate.Context{}))
	errs.Set(validate.FieldConfirmPassword, s.validator.Validate(ctx, validate.FieldConfirmPassword, form.ConfirmPassword, validate.Context{Password: form.Password}))
	if !errs.Valid() {
		return errs.Compact(), nil
	}

	err := s.client.Register(ctx, api.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		BirthDate: form.BirthDate,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, api.ErrEmailTaken) {
			return validate.Errors{validate.FieldEmail: "This email is not available. Please try another or log in if you already have an account."}, nil
		}
		return validate.Errors{validate.General: submitFailureMessage(err, "Registration failed. Please try again.")}, nil
	}
	return nil, nil
}

func submitFailureMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func (s *authService) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

// Rehydrate restores a persisted session at startup. Failures are swallowed:
// the application simply starts anonymous.
func (s *authService) Rehydrate(ctx context.Context) {
	s.session.Rehydrate(ctx, s.client.Me)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (validate.Errors, error) {
	if msg := s.validator.Validate(ctx, validate.FieldEmail, email, validate.Context{}); msg != "" {
		return validate.Errors{validate.FieldEmail: msg}, nil
	}
	if err := s.client.ForgotPassword(ctx, email); err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not request a password reset. Please try again.")}, nil
	}
	return nil, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password, confirm string) (validate.Errors, error) {
	errs := validate.Errors{}
	errs.Set(validate.FieldPassword, s.validator.Validate(ctx, validate.FieldPassword, password, validate.Context{}))
	errs.Set(validate.FieldConfirmPassword, s.validator.Validate(ctx, validate.FieldConfirmPassword, confirm, validate.Context{Password: password}))
	if !errs.Valid() {
		return errs.Compact(), nil
	}

	if err := s.client.ResetPassword(ctx, token, password); err != nil {
		return validate.Errors{validate.General: submitFailureMessage(err, "Could not reset the password. Please try again.")}, nil
	}
	return nil, nil
}
