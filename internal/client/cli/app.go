package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// controller defines the minimal command surface the menu loop needs.
// The real flow.Flow satisfies this interface; tests provide a stub.
type controller interface {
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	ListQuestions(ctx context.Context)
	PostQuestion(ctx context.Context)
	PostAnswer(ctx context.Context)
	ListAnswers(ctx context.Context)
	LoggedIn() bool
	ProfileName() string
}

// App runs the terminal menu loop on top of the shared flow controller.
type App struct {
	ctrl   controller
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctrl controller, reader *bufio.Reader, out io.Writer) *App {
	return &App{ctrl: ctrl, reader: reader, out: out}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, strings.Repeat("-", 50))
	fmt.Fprintln(a.out, "What would you like to do?")
	fmt.Fprintln(a.out, "  0: list questions")
	fmt.Fprintln(a.out, "  1: post a question")
	fmt.Fprintln(a.out, "  2: post an answer")
	fmt.Fprintln(a.out, "  3: list answers")
	fmt.Fprintln(a.out, "  9: quit")
	fmt.Fprintln(a.out, strings.Repeat("-", 50))
}

// Run shows the welcome banner, authenticates, and then loops over the
// menu until the user quits or input ends. A failed authentication is
// terminal: Run returns the error without entering the menu.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, strings.Repeat("=", 50))
	fmt.Fprintln(a.out, "      Welcome to the survey board!")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))

	hasAccount, err := GetSimpleText(a.reader, "Do you already have an account? (y/n)", a.out)
	if err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(hasAccount), "n") {
		err = a.ctrl.SignUp(ctx)
	} else {
		err = a.ctrl.SignIn(ctx)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Authentication failed, exiting.")
		return err
	}

	for a.ctrl.LoggedIn() {
		a.printMenu()
		choice, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "0":
			a.ctrl.ListQuestions(ctx)
		case "1":
			a.ctrl.PostQuestion(ctx)
		case "2":
			a.ctrl.PostAnswer(ctx)
		case "3":
			a.ctrl.ListAnswers(ctx)
		case "9":
			fmt.Fprintf(a.out, "Bye, %s!\n", a.ctrl.ProfileName())
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice, try again.")
		}
	}
	return nil
}
