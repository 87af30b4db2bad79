package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Email
	if u.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the command loop. Command availability follows session state:
// the sets below mirror the web app's guest, protected and admin routes.
// Input goes through the same reader the prompts use, so no line is lost
// between the command loop and a form.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to RentEase (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "rentease %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		// Guest commands.
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "forgot":
			a.ForgotPassword(ctx)
		case "reset":
			a.ResetPassword(ctx)

		// Public browsing.
		case "flats":
			a.browseFlats(ctx, false)
		case "filter":
			a.browseFlats(ctx, true)
		case "view":
			a.viewFlat(ctx, args)
		case "chat":
			a.chat(ctx)

		// Authenticated commands.
		case "myflats":
			a.myFlats(ctx)
		case "favorites":
			a.favorites(ctx)
		case "fav":
			a.addFavorite(ctx, args)
		case "unfav":
			a.removeFavorite(ctx, args)
		case "newflat":
			a.newFlat(ctx)
		case "editflat":
			a.editFlat(ctx, args)
		case "rmflat":
			a.deleteFlat(ctx, args)
		case "messages":
			a.listMessages(ctx, args)
		case "send":
			a.sendMessage(ctx, args)
		case "profile":
			a.showProfile(ctx)
		case "edit":
			a.editProfile(ctx)
		case "password":
			a.changePassword(ctx)
		case "rmaccount":
			a.deleteAccount(ctx)
		case "logout":
			a.Logout(ctx)

		// Admin commands.
		case "users":
			a.allUsers(ctx)
		case "edituser":
			a.editUser(ctx, args)
		case "role":
			a.updateRole(ctx, args)
		case "rmuser":
			a.deleteUser(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Browsing: flats, filter, view <id>, chat")
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Account:  login, register, forgot, reset, exit")
		return
	}
	fmt.Fprintln(a.out, "Listings: myflats, newflat, editflat <id>, rmflat <id>")
	fmt.Fprintln(a.out, "Favorites: favorites, fav <id>, unfav <id>")
	fmt.Fprintln(a.out, "Messages: messages <flat-id>, send <flat-id>")
	fmt.Fprintln(a.out, "Account:  profile, edit, password, rmaccount, logout, exit")
	if a.isAdmin() {
		fmt.Fprintln(a.out, "Admin:    users, edituser <id>, role <id> <admin|user>, rmuser <id>")
	}
}
