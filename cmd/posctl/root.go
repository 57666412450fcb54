package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pahanaedu/bookstore/core/config"
	"github.com/pahanaedu/bookstore/core/logger"
	"github.com/pahanaedu/bookstore/core/sessionkeeper"
)

const appName = "posctl"

// appConfig holds the client settings that are not part of the session keeper.
type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"` // production switches logs to JSON
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON       bool   `env:"LOG_JSON" envDefault:"false"`
	SessionCookie string `env:"POS_SESSION_COOKIE"`
	CookieName    string `env:"POS_SESSION_COOKIE_NAME" envDefault:"JSESSIONID"`
}

// cli carries the loaded configuration to subcommands.
type cli struct {
	app     appConfig
	session sessionkeeper.Config
	log     *slog.Logger

	baseURL  string
	logLevel string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Point-of-sale workstation client",
		Long: "posctl keeps a cashier's point-of-sale session alive, warns before idle logout\n" +
			"and computes change at checkout.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "point-of-sale server URL (overrides SESSION_BASE_URL)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "write logs as JSON (overrides LOG_JSON)")

	root.AddCommand(newSessionCmd(c))
	root.AddCommand(newPingCmd(c))
	root.AddCommand(newChangeCmd())

	return root
}

// load reads the environment, applies flag overrides and builds the logger.
func (c *cli) load(cmd *cobra.Command) error {
	if err := config.Load(&c.app); err != nil {
		return err
	}
	if err := config.Load(&c.session); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		c.session.BaseURL = c.baseURL
	}
	if flags.Changed("log-level") {
		c.app.LogLevel = c.logLevel
	}
	if flags.Changed("log-json") {
		c.app.LogJSON = c.logJSON
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.app.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.app.LogLevel, err)
	}

	profile := logger.WithDevelopment(appName)
	if c.app.Env == "production" {
		profile = logger.WithProduction(appName)
	}
	opts := []logger.Option{
		profile,
		logger.WithOutput(os.Stderr),
		logger.WithLevel(level),
	}
	if c.app.LogJSON {
		opts = append(opts, logger.WithJSONFormatter())
	}
	c.log = logger.New(opts...)
	logger.SetAsDefault(c.log)

	return nil
}
