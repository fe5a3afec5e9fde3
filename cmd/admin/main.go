package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

const usage = `usage: admin <command> [flags]

commands:
  login -username <u> -password <p>   sign in and store the session token
  me                                  show the signed-in administrator
  logout                              forget the stored session token

  projects   list | save | delete
  skills     list | save | delete
  experience list | save | delete

  <resource> save -file <draft.toml> [-id <id>]
  projects save ... [-image <path>] [-clear-image]
  <resource> delete -id <id>`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args[1], os.Args[2:]); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func report(w io.Writer, err error) {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(w, "validation failed:")
		for _, field := range ve.Keys() {
			fmt.Fprintf(w, "  %s: %s\n", field, ve.Fields[field])
		}
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
