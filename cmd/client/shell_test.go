package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/RecipeShare/internal/client/api"
	"github.com/atinyakov/RecipeShare/internal/client/session"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers the handful of endpoints the shell tests touch.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok"}`)
	})
	mux.HandleFunc("POST /api/verify-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid token"}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"Token is valid"}`)
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"Logged out successfully"}`)
	})
	mux.HandleFunc("GET /api/recipes/get", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cuisine") == "French" {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = io.WriteString(w, `[{"_id":"r1","title":"Soup","cuisine":"Italian","type":"Veg","mealType":"Dinner"}]`)
	})
	mux.HandleFunc("POST /api/recipes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"No token, authorization denied"}`)
			return
		}
		var p models.RecipePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Recipe{ID: "r9", Title: p.Title})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newShell(t *testing.T, baseURL, input string) (*shell, *strings.Builder) {
	t.Helper()
	out := &strings.Builder{}
	return &shell{
		api:   api.New(baseURL),
		store: session.New(filepath.Join(t.TempDir(), "session.json")),
		in:    bufio.NewReader(strings.NewReader(input)),
		out:   out,
		password: func(in *bufio.Reader, prompt string, w io.Writer) (string, error) {
			return readLineNoEcho(in)
		},
	}, out
}

func readLineNoEcho(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func TestShell_LoginListLogout(t *testing.T) {
	srv := fakeServer(t)
	sh, out := newShell(t, srv.URL, "login\nana@x.com\npw\nlist\nlist cuisine=French\nlogout\nexit\n")

	sh.run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Logged in as ana@x.com")
	assert.Contains(t, got, "r1  Soup  [Italian, Veg, Dinner]")
	assert.Contains(t, got, "No recipes found")
	assert.Contains(t, got, "Logged out successfully")
	assert.Contains(t, got, "Bye")
	assert.Empty(t, sh.store.CurrentToken())
	assert.Empty(t, sh.api.Token)
}

func TestShell_LoginFailure(t *testing.T) {
	srv := fakeServer(t)
	sh, out := newShell(t, srv.URL, "login\nana@x.com\nwrong\n")

	sh.run(context.Background())

	assert.Contains(t, out.String(), "Error: Invalid credentials (400)")
	assert.Empty(t, sh.store.CurrentToken())
}

func TestShell_CreateRequiresLogin(t *testing.T) {
	srv := fakeServer(t)
	input := "create\nSoup\n\n\n\n\n\nBoil\n\n\n"
	sh, out := newShell(t, srv.URL, input)

	sh.run(context.Background())
	assert.Contains(t, out.String(), "No token, authorization denied")

	sh, out = newShell(t, srv.URL, input)
	sh.api.Token = "tok"
	sh.run(context.Background())
	assert.Contains(t, out.String(), "Recipe created: r9")
}

func TestShell_Restore(t *testing.T) {
	srv := fakeServer(t)

	sh, out := newShell(t, srv.URL, "")
	require.NoError(t, sh.store.Set("tok", "ana@x.com"))
	sh.restore(context.Background())
	assert.Equal(t, "tok", sh.api.Token)
	assert.Contains(t, out.String(), "Logged in as ana@x.com")

	sh, out = newShell(t, srv.URL, "")
	require.NoError(t, sh.store.Set("stale", "ana@x.com"))
	sh.restore(context.Background())
	assert.Empty(t, sh.api.Token)
	assert.Empty(t, sh.store.CurrentToken())
	assert.Contains(t, out.String(), "Saved session expired")
}

func TestShell_Usage(t *testing.T) {
	sh, out := newShell(t, "http://127.0.0.1:0", "get\nedit\ndelete\nlist cuisine\nfrobnicate\nhelp\n")

	sh.run(context.Background())

	got := out.String()
	assert.Contains(t, got, "usage: get <id>")
	assert.Contains(t, got, "usage: edit <id>")
	assert.Contains(t, got, "usage: delete <id>")
	assert.Contains(t, got, `bad filter "cuisine"`)
	assert.Contains(t, got, "Unknown command")
	assert.Contains(t, got, "list [key=value ...]")
}

func TestParseFilter(t *testing.T) {
	got, err := parseFilter([]string{"cuisine=Italian", "mealType=Dinner"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cuisine": "Italian", "mealType": "Dinner"}, got)

	_, err = parseFilter([]string{"=x"})
	assert.Error(t, err)
}

func TestTerminalPassword(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origTerm, origRead })

	isTerminal = func(int) bool { return false }
	got, err := terminalPassword(bufio.NewReader(strings.NewReader("plain\n")), "Password: ", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out strings.Builder
	got, err = terminalPassword(bufio.NewReader(strings.NewReader("")), "Password: ", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = terminalPassword(bufio.NewReader(strings.NewReader("")), "Password: ", io.Discard)
	assert.Error(t, err)
}
