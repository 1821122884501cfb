// Package app contains the Cobra command tree for pkginfo.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pkginfo/internal/config"
	"github.com/blackwell-systems/pkginfo/internal/output"
	"github.com/blackwell-systems/pkginfo/internal/scanner"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
}

// rootOptions holds the persistent flags and what PersistentPreRunE builds
// from them.
type rootOptions struct {
	configFile string
	noColor    bool
	verbose    bool
	marker     string
	extensions []string

	cfg       *config.Config
	logger    *log.Logger
	errStyles output.Styles
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pkginfo <command> <sources_root> [template_file]",
		Short: "Check and generate package-info files for JVM source trees",
		Long: `pkginfo scans a JVM source tree (e.g. src/main/java) and makes sure
every package directory holding .java, .kt, .scala or .clj files has a
package-info.java file.

  pkginfo check <sources_root>
  pkginfo set-missing <sources_root> <template_file>
  pkginfo set-all <sources_root> <template_file>

Templates are plain text; ${package} is replaced by the package name.

Exit status: 0 success, 1 missing package-info files found, 2 invalid
invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appVersion,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageErrorf("missing command")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file path (default: ./.pkginfo.yaml or ~/.config/pkginfo/config.yaml)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output")
	flags.StringVar(&opts.marker, "marker", "", "Package documentation file name (default: package-info.java)")
	flags.StringSliceVar(&opts.extensions, "ext", nil, "Source extensions that make a directory a package (can be repeated)")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newSetCmd(opts, setMissing))
	cmd.AddCommand(newSetCmd(opts, setAll))

	return cmd
}

// setup loads configuration, applies flag overrides and prepares output.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.marker != "" {
		cfg.MarkerFile = o.marker
	}
	if exts := config.NormalizeExtensions(o.extensions); len(exts) > 0 {
		cfg.Extensions = exts
	}
	o.cfg = cfg

	wantColor := cfg.Output.Color && !o.noColor
	output.ConfigureColor(cmd.OutOrStdout(), wantColor)
	o.errStyles = output.StylesFor(cmd.ErrOrStderr(), wantColor)

	level := log.WarnLevel
	if o.verbose {
		level = log.DebugLevel
	}
	o.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "pkginfo",
		Level:  level,
	})
	return nil
}

// scan runs the scanner over root with the loaded configuration.
func (o *rootOptions) scan(root string) ([]scanner.Item, error) {
	s := scanner.New(scanner.Options{
		MarkerFile: o.cfg.MarkerFile,
		Extensions: o.cfg.Extensions,
	})
	items, err := s.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	o.logger.Debug("scanned sources root", "root", root, "packages", len(items),
		"extensions", o.cfg.Extensions)
	return items, nil
}

// Execute is the entry point called from main. It never returns.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line in args and returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := ExitCode(err)

	var usageErr *UsageError
	switch {
	case err == nil, errors.Is(err, ErrCheckFailed):
	case errors.As(err, &usageErr):
		fmt.Fprintln(stderr, "error:", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
	default:
		fmt.Fprintln(stderr, "error:", err)
	}
	return code
}
