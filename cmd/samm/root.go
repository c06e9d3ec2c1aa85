package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"samm/internal/core"
	"samm/internal/logging"
	"samm/internal/storage/config"
	"samm/internal/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrCancelled is returned when the user cancels an operation (e.g. prompt declined).
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var version = "0.3.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "samm",
	Short: "Sonic Adventure Mod Manager - loader installer and profile manager",
	Long: `samm installs and updates the Sonic Adventure mod loader and its
dependencies, migrates old loader settings into profiles, and writes the
game's configuration from the active profile.

Start with 'samm game set <path>' to point samm at the game directory.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
}

// bindGlobalFlags registers the flags every command accepts. Each can also be
// set through the environment as SAMM_<FLAG>, e.g. SAMM_LOG_LEVEL.
func bindGlobalFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config directory (default: ~/.config/samm)")
	flags.String("data", "", "data directory (default: ~/.local/share/samm)")
	flags.BoolP("verbose", "v", false, "log to the console as well as the log file")
	flags.BoolP("yes", "y", false, "answer yes to every prompt")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("keys", "vim", "prompt navigation keys: vim or standard")

	_ = viper.BindPFlags(flags)
	viper.SetEnvPrefix("SAMM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// getDirs returns the config and data directories, honouring flags and
// SAMM_CONFIG / SAMM_DATA
func getDirs() (config.Dirs, error) {
	dirs := config.Dirs{
		Config: viper.GetString("config"),
		Data:   viper.GetString("data"),
	}
	if dirs.Config != "" && dirs.Data != "" {
		return dirs, nil
	}

	defaults, err := config.DefaultDirs()
	if err != nil {
		return config.Dirs{}, err
	}
	if dirs.Config == "" {
		dirs.Config = defaults.Config
	}
	if dirs.Data == "" {
		dirs.Data = defaults.Data
	}
	return dirs, nil
}

// gitHubToken returns the token for commit lookups from SAMM_GITHUB_TOKEN or
// GITHUB_TOKEN. An empty result falls back to the stored token.
func gitHubToken() string {
	if tok := viper.GetString("github_token"); tok != "" {
		return tok
	}
	return os.Getenv("GITHUB_TOKEN")
}

// newReporter builds the terminal reporter for a command
func newReporter(cmd *cobra.Command) *tui.Reporter {
	return tui.NewReporter(cmd.OutOrStdout(),
		tui.WithInput(cmd.InOrStdin()),
		tui.WithAssumeYes(viper.GetBool("yes")),
		tui.WithInteractive(isTerminal(cmd.InOrStdin())),
		tui.WithKeyMap(tui.NewKeyMap(viper.GetString("keys"))),
	)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// session bundles what a command needs while it runs
type session struct {
	svc      *core.Service
	reporter *tui.Reporter
	closeLog io.Closer
}

func (s *session) Close() {
	if err := s.svc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", err)
	}
	s.closeLog.Close()
}

// initService creates and initializes the core service
func initService(cmd *cobra.Command) (*session, error) {
	dirs, err := getDirs()
	if err != nil {
		return nil, err
	}

	// Ensure directories exist
	if err := os.MkdirAll(dirs.Config, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(dirs.Data, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	level := viper.GetString("log-level")
	if level == "" {
		if appConfig, err := config.Load(dirs.Config); err == nil {
			level = appConfig.LogLevel
		}
	}
	log, closeLog, err := logging.New(logging.Options{
		Level:   level,
		File:    filepath.Join(dirs.Data, "samm.log"),
		Verbose: viper.GetBool("verbose"),
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	reporter := newReporter(cmd)
	svc, err := core.NewService(core.ServiceConfig{
		ConfigDir:   dirs.Config,
		DataDir:     dirs.Data,
		Reporter:    reporter,
		Logger:      log,
		GitHubToken: gitHubToken(),
	})
	if err != nil {
		closeLog.Close()
		return nil, err
	}
	log.Debug().Str("command", cmd.CommandPath()).Msg("service ready")

	return &session{svc: svc, reporter: reporter, closeLog: closeLog}, nil
}

// withGame runs fn with the service once a game has been selected
func withGame(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	if _, err := s.svc.CurrentGame(); err != nil {
		return err
	}
	return fn(s)
}

// boolResult turns an operation's success flag into a command error
func boolResult(ok bool, what string) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%s failed; see the log for details", what)
}
