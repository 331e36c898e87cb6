package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	id, ok := a.session.Identity()
	if !ok {
		return ""
	}
	s := id.Username
	if a.mirror.Status().Active {
		s += " monitoring"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to SpineGuard CLI (type 'help' for commands)")

	for {
		fmt.Printf("spinectl %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: watch, start, stop, toggle, calibrate good|bad, train, models, activate <id>, delete <id>, settings, save, profile, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "profile":
			a.profile(ctx)
		case "watch":
			a.watch(ctx)
		case "toggle":
			a.toggleMonitoring(ctx)
		case "start":
			a.setMonitoring(ctx, true)
		case "stop":
			a.setMonitoring(ctx, false)
		case "calibrate":
			if len(args) == 0 {
				fmt.Println("Usage: calibrate good|bad")
				continue
			}
			a.calibrate(ctx, args[0])
		case "train":
			a.train(ctx)
		case "models":
			a.listModels(ctx)
		case "activate":
			if len(args) == 0 {
				fmt.Println("Usage: activate <model id>")
				continue
			}
			a.activateModel(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <model id>")
				continue
			}
			a.deleteModel(ctx, args[0])
		case "settings":
			a.showSettings(ctx)
		case "save":
			a.saveSettings(ctx)
		case "exit", "quit":
			a.cancelWatch()
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
