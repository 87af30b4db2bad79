package cli

import (
	"context"
	"fmt"

	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/services"
	"github.com/XXS1337/rentease/internal/validate"
)

func (a *App) allUsers(ctx context.Context) {
	users, err := a.users.All(ctx)
	if err != nil {
		a.log.Error(ctx, "user list fetch failed", "err", err)
		return
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s  %-30s %-30s %s\n", u.ID, u.FullName(), u.Email, u.Role)
	}
}

// editUser edits another user's record through the admin endpoint. The form
// is pre-seeded with the current values so only changed fields need typing
// over; the email probe is skipped when the address stays the same.
func (a *App) editUser(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: edituser <user-id>")
	if !ok {
		return
	}

	current, err := a.users.ByID(ctx, id)
	if err != nil {
		a.log.Error(ctx, "user fetch failed", "err", err)
		return
	}
	if current == nil {
		fmt.Fprintln(a.out, "User not found.")
		return
	}
	fmt.Fprintf(a.out, "Editing %s (%s)\n", current.FullName(), current.Email)

	form := services.ProfileForm{OriginalEmail: current.Email}

	if form.FirstName, err = a.promptField(ctx, validate.FieldFirstName, "First name", validate.Context{}); err != nil {
		return
	}
	if form.LastName, err = a.promptField(ctx, validate.FieldLastName, "Last name", validate.Context{}); err != nil {
		return
	}
	if form.Email, err = a.promptEmail(ctx, "Email", current.Email); err != nil {
		return
	}
	if form.BirthDate, err = a.promptField(ctx, validate.FieldBirthDate, "Birth date (YYYY-MM-DD)", validate.Context{}); err != nil {
		return
	}
	if form.Password, err = a.promptPassword(ctx, validate.Context{AllowEmptyPassword: true}); err != nil {
		return
	}
	form.ConfirmPassword = form.Password

	errs, err := a.users.EditUser(ctx, id, form)
	if err != nil {
		a.log.Error(ctx, "user update failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "User updated!")
}

func (a *App) updateRole(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: role <user-id> <admin|user>")
		return
	}
	id := args[0]

	var role models.Role
	switch args[1] {
	case "admin":
		role = models.RoleAdmin
	case "user":
		role = models.RoleUser
	default:
		fmt.Fprintln(a.out, "Role must be 'admin' or 'user'.")
		return
	}

	if u := a.session.User(); u != nil && u.ID == id && role != models.RoleAdmin {
		confirmed, err := GetConfirmation(a.reader, "Demote your own account? Admin commands close immediately.", a.out)
		if err != nil || !confirmed {
			return
		}
	}

	if err := a.users.UpdateRole(ctx, id, role); err != nil {
		a.log.Error(ctx, "role update failed", "err", err)
		return
	}
	fmt.Fprintln(a.out, "Role updated.")
}

func (a *App) deleteUser(ctx context.Context, args []string) {
	id, ok := a.requireArg(args, "Usage: rmuser <user-id>")
	if !ok {
		return
	}
	confirmed, err := GetConfirmation(a.reader, "Delete this user?", a.out)
	if err != nil || !confirmed {
		return
	}
	if err := a.users.Delete(ctx, id); err != nil {
		a.log.Error(ctx, "user deletion failed", "err", err)
		return
	}
	fmt.Fprintln(a.out, "User deleted.")
}
