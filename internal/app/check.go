package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pkginfo/internal/output"
	"github.com/blackwell-systems/pkginfo/internal/scanner"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var flagJSON bool

	cmd := &cobra.Command{
		Use:   "check <sources_root>",
		Short: "Report packages with sources but no package-info file",
		Long: `Check scans the sources root and reports every package directory that
holds JVM source files but no package-info file. Directories without
sources are never reported. Exits with status 1 when anything is missing.`,
		Args: checkArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.scan(args[0])
			if err != nil {
				return err
			}
			return reportMissing(cmd, opts, items, flagJSON)
		},
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output missing packages as JSON")
	return cmd
}

// checkArgs accepts the sources root and tolerates a trailing template
// path so the same argument list works for every command.
func checkArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return usageErrorf("missing sources root")
	case len(args) > 2:
		return usageErrorf("too many arguments: %v", args[2:])
	}
	return nil
}

func reportMissing(cmd *cobra.Command, opts *rootOptions, items []scanner.Item, asJSON bool) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	missing := scanner.Missing(items)

	if asJSON {
		if missing == nil {
			missing = []scanner.Item{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(missing); err != nil {
			return err
		}
	} else {
		for _, item := range missing {
			fmt.Fprintf(stderr, "%s %s %s %s\n",
				opts.errStyles.Error.Render("Missing package info for package"),
				opts.errStyles.Bold.Render(item.Package),
				opts.errStyles.Error.Render("at"),
				opts.errStyles.Muted.Render(item.Path))
		}
	}

	if len(missing) > 0 {
		fmt.Fprintln(stderr, opts.errStyles.Error.Render(
			"Missing "+output.Plural(len(missing), opts.cfg.MarkerFile+" file")))
		return ErrCheckFailed
	}

	if !asJSON {
		fmt.Fprintln(stdout, output.StyleSuccess.Render(fmt.Sprintf("No missing %s (%s checked)",
			opts.cfg.MarkerFile, output.Plural(len(scanner.Sources(items)), "source package"))))
	}
	return nil
}
