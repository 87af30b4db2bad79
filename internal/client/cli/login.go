package cli

import (
	"context"
	"fmt"

	"github.com/XXS1337/rentease/internal/client/services"
	"github.com/XXS1337/rentease/internal/common"
	"github.com/XXS1337/rentease/internal/validate"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.log.Error(ctx, "read input", "err", err)
		return
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		a.log.Error(ctx, "read password", "err", err)
		return
	}
	defer common.WipeByteArray(password)

	errs, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Login successful!")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		return
	}
	a.assistant.Reset()
	fmt.Fprintln(a.out, "Logged out.")
}

// Register walks the registration form with per-field feedback, then submits
// through the service, which re-validates everything as one bag.
func (a *App) Register(ctx context.Context) {
	form := services.RegisterForm{}
	var err error

	if form.FirstName, err = a.promptField(ctx, validate.FieldFirstName, "First name", validate.Context{}); err != nil {
		return
	}
	if form.LastName, err = a.promptField(ctx, validate.FieldLastName, "Last name", validate.Context{}); err != nil {
		return
	}
	if form.Email, err = a.promptEmail(ctx, "Email", ""); err != nil {
		return
	}
	if form.BirthDate, err = a.promptField(ctx, validate.FieldBirthDate, "Birth date (YYYY-MM-DD)", validate.Context{}); err != nil {
		return
	}
	if form.Password, err = a.promptPassword(ctx, validate.Context{}); err != nil {
		return
	}
	form.ConfirmPassword = form.Password

	errs, err := a.auth.Register(ctx, form)
	if err != nil {
		a.log.Error(ctx, "registration failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Account created! You can now log in.")
}

func (a *App) ForgotPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter account email", a.out)
	if err != nil {
		return
	}
	errs, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		a.log.Error(ctx, "forgot-password failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset link has been sent.")
}

func (a *App) ResetPassword(ctx context.Context) {
	token, err := GetSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return
	}
	password, err := a.promptPassword(ctx, validate.Context{})
	if err != nil {
		return
	}

	errs, err := a.auth.ResetPassword(ctx, token, password, password)
	if err != nil {
		a.log.Error(ctx, "password reset failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Password updated. Please log in.")
}
