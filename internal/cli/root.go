// Package cli implements the tracker command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxviazov/game-tracker-service/internal/gateway"
)

// ErrReported marks a failure whose notice was already printed.
var ErrReported = errors.New("reported")

type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger
	api    *gateway.Client
}

// NewRootCommand builds the `tracker` command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Manage your game collection through the game tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "optional YAML config file (reads the gateway section)")
	pf.String("gateway", "http://localhost:5000/api", "gateway base URL")
	pf.Int("timeout", 10, "request timeout in seconds")
	pf.Bool("verbose", false, "log requests and failures to stderr")
	_ = a.v.BindPFlag("gateway.base_url", pf.Lookup("gateway"))
	_ = a.v.BindPFlag("gateway.timeout_seconds", pf.Lookup("timeout"))
	_ = a.v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = a.v.BindPFlag("config", pf.Lookup("config"))

	root.AddCommand(a.gamesCommand(), a.reviewsCommand(), a.statsCommand(), a.enumsCommand())
	return root
}

// setup resolves flags, APP_* env and the optional config file, then builds the client.
func (a *app) setup() error {
	a.v.SetEnvPrefix("APP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if a.v.GetBool("verbose") {
		a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	timeout := time.Duration(a.v.GetInt("gateway.timeout_seconds")) * time.Second
	api, err := gateway.New(a.v.GetString("gateway.base_url"), timeout)
	if err != nil {
		return err
	}
	a.api = api
	return nil
}

// notify prints a notice; errors go to errOut and turn into ErrReported.
func (a *app) notify(text string, isErr bool) error {
	if isErr {
		fmt.Fprintln(a.errOut, "error: "+text)
		return ErrReported
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// fail reports a load failure once.
func (a *app) fail(what string, err error) error {
	return a.notify(fmt.Sprintf("%s: %v", what, err), true)
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}
