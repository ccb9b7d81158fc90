package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pxlr/pxlr/internal/config"
	"github.com/pxlr/pxlr/internal/imgio"
	"github.com/pxlr/pxlr/internal/logger"
	"github.com/pxlr/pxlr/internal/script"
	"github.com/pxlr/pxlr/internal/session"
)

var (
	verbose    bool
	initScript string

	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "pxlr [files...]",
	Short: "A modal, scriptable pixel editor",
	Long: `Pxlr is a modal pixel-art and animation editor driven by a
line-oriented command language. Files given on the command line are
opened as views; commands are then read from standard input, one per
line, until the session ends.`,
	RunE:          runEditor,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&initScript, "init", "u", "", "Run commands from a script on startup ('-' skips startup scripts)")
}

func initLogging() {
	logger.SetVerbose(verbose)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("pxlr %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("pxlr %s\n", version)
}

func runEditor(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	s := session.New(imgio.New())
	in := script.New(s, os.Stdout)

	// The built-in script installs the stock bindings before any user
	// configuration; `-u -` starts with a pristine, unbound session.
	if initScript != "-" {
		if err := in.Defaults(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	for key, value := range cfg.Settings {
		if err := in.Execute(fmt.Sprintf("set %s %s", key, value)); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
	}

	for _, path := range args {
		if err := s.Edit(path); err != nil {
			return fmt.Errorf("error opening %s: %w", path, err)
		}
		cfg.AddRecentFile(path)
	}
	if len(args) == 0 {
		s.Blank("untitled", 32, 32)
	}

	// The -u flag overrides the configured user init script.
	startup := cfg.InitScript
	if initScript != "" {
		startup = initScript
	}
	if startup != "" && startup != "-" {
		// Startup scripts report their failures but do not abort the
		// session: every runnable line has already run.
		if err := in.Source(startup); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for s.Running() && scanner.Scan() {
		if err := in.Execute(scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading commands: %w", err)
	}
	return nil
}
