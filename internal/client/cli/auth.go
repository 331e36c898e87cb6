package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spineguard/spinectl/internal/client/api"
)

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if err := a.session.Login(ctx, userName, password); err != nil {
		fmt.Printf("Login unsuccessful: %s\n", err.Error())
		return
	}

	fmt.Println("Login successful")
	a.loadSessionData(ctx)
}

func (a *App) Register(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email (optional)", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	req := api.RegisterRequest{Username: userName, Password: password, Email: email}
	if err := a.session.Register(ctx, req); err != nil {
		fmt.Printf("Registration unsuccessful: %s\n", err.Error())
		return
	}

	fmt.Println("Registration successful, you are now logged in")
	a.loadSessionData(ctx)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Printf("Logout error: %s\n", err.Error())
		return
	}
	fmt.Println("Logged out")
}

func (a *App) profile(ctx context.Context) {
	id, ok := a.session.Identity()
	if !ok {
		fmt.Println("Please login first.")
		return
	}
	if err := a.session.UpdateProfile(ctx); err != nil {
		fmt.Printf("Profile refresh failed: %s\n", err.Error())
	}
	id, _ = a.session.Identity()
	fmt.Printf("User: %s (id %s)\n", id.Username, id.ID)
}

// loadSessionData performs the once-per-session load of settings and
// models right after a successful auth.
func (a *App) loadSessionData(ctx context.Context) {
	id, ok := a.session.Identity()
	if !ok {
		return
	}
	if err := a.coord.LoadSessionData(ctx, id.ID); err != nil {
		fmt.Printf("Failed to load user data: %s\n", err.Error())
	}
}
