// Package main is the interactive RecipeShare command-line client.
package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atinyakov/RecipeShare/internal/client/api"
	"github.com/atinyakov/RecipeShare/internal/client/session"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags, restores the saved session and starts the shell.
func main() {
	var (
		baseURL     string
		sessionFile string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", session.DefaultFile, "path to the session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("RecipeShare Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	store := session.New(sessionFile)
	if err := store.Load(); err != nil {
		log.Fatal(err)
	}

	sh := &shell{
		api:      api.New(baseURL),
		store:    store,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		password: terminalPassword,
	}
	sh.restore(context.Background())
	sh.run(context.Background())
}
