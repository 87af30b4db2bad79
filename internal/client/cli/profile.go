package cli

import (
	"context"
	"fmt"

	"github.com/XXS1337/rentease/internal/client/services"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/validate"
)

func (a *App) showProfile(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "You are not logged in.")
		return
	}

	fmt.Fprintf(a.out, "Name:       %s\n", u.FullName())
	fmt.Fprintf(a.out, "Email:      %s\n", u.Email)
	fmt.Fprintf(a.out, "Birth date: %s\n", u.BirthDate.UTC().Format(validate.DateLayout))
	fmt.Fprintf(a.out, "Role:       %s\n", u.Role)
	fmt.Fprintf(a.out, "Joined:     %s\n", u.CreatedAt.UTC().Format(validate.DateLayout))
	if exp, ok := session.TokenExpiry(a.session.Token()); ok {
		fmt.Fprintf(a.out, "Session expires at %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
}

// editProfile walks the profile form; blank password keeps the current one,
// and an unchanged email skips the availability probe.
func (a *App) editProfile(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "You are not logged in.")
		return
	}

	form := services.ProfileForm{OriginalEmail: u.Email}
	var err error

	if form.FirstName, err = a.promptField(ctx, validate.FieldFirstName, "First name", validate.Context{}); err != nil {
		return
	}
	if form.LastName, err = a.promptField(ctx, validate.FieldLastName, "Last name", validate.Context{}); err != nil {
		return
	}
	if form.Email, err = a.promptEmail(ctx, "Email", u.Email); err != nil {
		return
	}
	if form.BirthDate, err = a.promptField(ctx, validate.FieldBirthDate, "Birth date (YYYY-MM-DD)", validate.Context{}); err != nil {
		return
	}
	if form.Password, err = a.promptPassword(ctx, validate.Context{AllowEmptyPassword: true}); err != nil {
		return
	}
	form.ConfirmPassword = form.Password

	errs, err := a.users.UpdateMyProfile(ctx, form)
	if err != nil {
		a.log.Error(ctx, "profile update failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Profile updated!")
}

// changePassword is a shortcut through the profile-update endpoint that only
// touches the password; the other fields are resubmitted unchanged.
func (a *App) changePassword(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "You are not logged in.")
		return
	}

	password, err := a.promptPassword(ctx, validate.Context{})
	if err != nil {
		return
	}

	form := services.ProfileForm{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		BirthDate:       u.BirthDate.UTC().Format(validate.DateLayout),
		Password:        password,
		ConfirmPassword: password,
		OriginalEmail:   u.Email,
	}

	errs, err := a.users.UpdateMyProfile(ctx, form)
	if err != nil {
		a.log.Error(ctx, "password change failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}

func (a *App) deleteAccount(ctx context.Context) {
	confirmed, err := GetConfirmation(a.reader, "Delete your account? This cannot be undone.", a.out)
	if err != nil || !confirmed {
		return
	}
	if err := a.users.DeleteMyProfile(ctx); err != nil {
		a.log.Error(ctx, "account deletion failed", "err", err)
		return
	}
	a.assistant.Reset()
	fmt.Fprintln(a.out, "Account deleted.")
}
