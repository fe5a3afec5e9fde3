package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/portfolio-admin/internal/admin"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/console"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
	"github.com/JaimeStill/portfolio-admin/pkg/session"
)

// Application holds the systems every command needs.
type Application struct {
	config  *config.Config
	logger  *slog.Logger
	client  *client.Client
	admin   *admin.System
	console *console.Console
	out     io.Writer
}

// NewApplication loads configuration and builds the systems.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.New(&cfg.Logging, os.Stderr)

	store, err := session.NewFile(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	c := client.New(&cfg.Client, store, logger)

	con, err := console.New(c, &cfg.Upload, logger)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	logger.Debug("console initialized", "base_url", c.BaseURL(), "session", store.Path())

	return &Application{
		config:  cfg,
		logger:  logger,
		client:  c,
		admin:   admin.New(c, store, logger),
		console: con,
		out:     os.Stdout,
	}, nil
}

// Run executes one command.
func (app *Application) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return app.login(ctx, args)
	case "me":
		return app.me(ctx)
	case "logout":
		if err := app.admin.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "signed out")
		return nil
	case "projects":
		return app.projects(ctx, args)
	case "skills":
		return app.skills(ctx, args)
	case "experience":
		return app.experience(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprintln(app.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func (app *Application) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "Admin username")
	password := fs.String("password", "", "Admin password (or ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	profile, err := app.admin.Login(ctx, admin.Credentials{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}

	name := profile.Username
	if name == "" {
		name = *username
	}
	fmt.Fprintf(app.out, "signed in as %s\n", name)
	return nil
}

func (app *Application) me(ctx context.Context) error {
	profile, err := app.admin.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s (%s)\n", profile.Username, profile.ID)
	return nil
}
