package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/client/api"
	"github.com/atinyakov/RecipeShare/internal/client/form"
	"github.com/atinyakov/RecipeShare/internal/client/session"
	"github.com/atinyakov/RecipeShare/internal/models"
	"golang.org/x/term"
)

const helpText = `Available commands:
  signup                 create an account and log in
  login                  log in with email and password
  logout                 forget the saved session
  check                  ask the server whether you are logged in
  list [key=value ...]   list recipes, e.g. list cuisine=Italian mealType=Dinner
  get <id>               show one recipe
  mine                   list the recipes you created
  create                 write a new recipe
  edit <id>              change one of your recipes
  delete <id>            delete one of your recipes
  help                   show this text
  exit                   leave the shell`

// Terminal hooks, swapped in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// terminalPassword reads a password without echo when stdin is a
// terminal, and falls back to a plain line otherwise.
func terminalPassword(in *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return form.ReadLine(in, prompt, w)
	}
	fmt.Fprint(w, prompt)
	b, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

type shell struct {
	api      *api.Client
	store    *session.Store
	in       *bufio.Reader
	out      io.Writer
	password func(in *bufio.Reader, prompt string, w io.Writer) (string, error)
}

// restore reuses a saved token if the server still accepts it.
func (s *shell) restore(ctx context.Context) {
	token := s.store.CurrentToken()
	if token == "" {
		return
	}
	s.api.Token = token
	if err := s.api.VerifyToken(ctx); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fmt.Fprintln(s.out, "Saved session expired, please log in again")
			s.api.Token = ""
			_ = s.store.Clear()
			return
		}
		fmt.Fprintln(s.out, "could not verify saved session:", err)
		return
	}
	fmt.Fprintf(s.out, "Logged in as %s\n", s.store.Email)
}

// run is the read-eval-print loop. It returns on exit or end of input.
func (s *shell) run(ctx context.Context) {
	for {
		line, err := form.ReadLine(s.in, "recipeshare> ", s.out)
		if err != nil {
			fmt.Fprintln(s.out)
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		if err := s.dispatch(ctx, args); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *shell) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "signup":
		return s.signup(ctx)
	case "login":
		return s.login(ctx)
	case "logout":
		return s.logout(ctx)
	case "check":
		ok, err := s.api.Check(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Logged in: %t\n", ok)
	case "list":
		filter, err := parseFilter(args[1:])
		if err != nil {
			return err
		}
		recipes, err := s.api.ListRecipes(ctx, filter)
		if err != nil {
			return err
		}
		s.printList(recipes)
	case "mine":
		recipes, err := s.api.MyRecipes(ctx)
		if err != nil {
			return err
		}
		s.printList(recipes)
	case "get":
		if len(args) < 2 {
			return errors.New("usage: get <id>")
		}
		r, err := s.api.GetRecipe(ctx, args[1])
		if err != nil {
			return err
		}
		s.printRecipe(r)
	case "create":
		return s.create(ctx)
	case "edit":
		if len(args) < 2 {
			return errors.New("usage: edit <id>")
		}
		return s.edit(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return errors.New("usage: delete <id>")
		}
		msg, err := s.api.DeleteRecipe(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, msg)
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *shell) signup(ctx context.Context) error {
	name, err := form.ReadLine(s.in, "Name: ", s.out)
	if err != nil {
		return err
	}
	email, err := form.ReadLine(s.in, "Email: ", s.out)
	if err != nil {
		return err
	}
	password, err := s.password(s.in, "Password: ", s.out)
	if err != nil {
		return err
	}
	token, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.remember(token, email)
}

func (s *shell) login(ctx context.Context) error {
	email, err := form.ReadLine(s.in, "Email: ", s.out)
	if err != nil {
		return err
	}
	password, err := s.password(s.in, "Password: ", s.out)
	if err != nil {
		return err
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.remember(token, email)
}

func (s *shell) remember(token, email string) error {
	s.api.Token = token
	if err := s.store.Set(token, email); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(s.out, "Logged in as %s\n", email)
	return nil
}

// logout always forgets the local token, even when the server is down.
func (s *shell) logout(ctx context.Context) error {
	msg, err := s.api.Logout(ctx)
	s.api.Token = ""
	if clearErr := s.store.Clear(); clearErr != nil {
		return clearErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, msg)
	return nil
}

func (s *shell) create(ctx context.Context) error {
	f := form.New()
	if err := f.Prompt(s.in, s.out); err != nil {
		return err
	}
	r, err := s.api.CreateRecipe(ctx, f.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Recipe created: %s\n", r.ID)
	return nil
}

func (s *shell) edit(ctx context.Context, id string) error {
	current, err := s.api.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	f := form.FromRecipe(current)
	if err := f.Prompt(s.in, s.out); err != nil {
		return err
	}
	r, err := s.api.UpdateRecipe(ctx, id, f.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Recipe updated: %s\n", r.ID)
	return nil
}

func (s *shell) printList(recipes []models.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(s.out, "No recipes found")
		return
	}
	for _, r := range recipes {
		fmt.Fprintf(s.out, "%s  %s  [%s, %s, %s]\n", r.ID, r.Title, r.Cuisine, r.Type, r.MealType)
	}
}

func (s *shell) printRecipe(r *models.Recipe) {
	b, _ := json.MarshalIndent(r, "", "  ")
	fmt.Fprintln(s.out, string(b))
}

// parseFilter turns key=value arguments into a list filter.
func parseFilter(args []string) (map[string]string, error) {
	filter := map[string]string{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad filter %q, want key=value", a)
		}
		filter[k] = v
	}
	return filter, nil
}
