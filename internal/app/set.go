package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pkginfo/internal/fixer"
	"github.com/blackwell-systems/pkginfo/internal/output"
	"github.com/blackwell-systems/pkginfo/internal/scanner"
)

// setMode selects which packages a set command writes.
type setMode int

const (
	setMissing setMode = iota
	setAll
)

func (m setMode) String() string {
	if m == setAll {
		return "set-all"
	}
	return "set-missing"
}

func newSetCmd(opts *rootOptions, mode setMode) *cobra.Command {
	var flagDryRun bool

	short := "Write package-info files where they are missing"
	long := `Set-missing renders the template into every package directory that
holds JVM source files but no package-info file yet. Existing files are
left untouched.`
	if mode == setAll {
		short = "Write package-info files into every source package"
		long = `Set-all renders the template into every package directory that holds
JVM source files, replacing any existing package-info file.`
	}

	cmd := &cobra.Command{
		Use:   mode.String() + " <sources_root> <template_file>",
		Short: short,
		Long: long + `

The template is read in full before anything is written. ${package} (or
$package) is replaced by the dotted package name; $$ is a literal $.
Unknown or malformed placeholders abort the run.`,
		Args: setArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, opts, mode, args[0], args[1], flagDryRun)
		},
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "List the files that would be written without writing them")
	return cmd
}

func setArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return usageErrorf("missing sources root")
	case len(args) == 1:
		return usageErrorf("missing template file to write package-info files")
	case len(args) > 2:
		return usageErrorf("too many arguments: %v", args[2:])
	}
	return nil
}

func runSet(cmd *cobra.Command, opts *rootOptions, mode setMode, root, templatePath string, dryRun bool) error {
	tmpl, err := fixer.LoadTemplate(templatePath)
	if err != nil {
		return err
	}
	opts.logger.Debug("loaded template", "path", templatePath)

	items, err := opts.scan(root)
	if err != nil {
		return err
	}

	w := fixer.NewWriter(tmpl, fixer.WriterOptions{
		MarkerFile: opts.cfg.MarkerFile,
		DryRun:     dryRun,
		Logger:     opts.logger,
	})

	var count int
	var targets []scanner.Item
	if mode == setAll {
		targets = fixer.Targets(items)
		count, err = w.WriteAll(items)
	} else {
		targets = fixer.MissingTargets(items)
		count, err = w.WriteMissing(items)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", mode, err)
	}

	stdout := cmd.OutOrStdout()
	if dryRun {
		renderTargets(cmd, w, targets)
		fmt.Fprintln(stdout, output.StyleWarning.Render(fmt.Sprintf("Would add %d %s", count, opts.cfg.MarkerFile)))
		return nil
	}
	fmt.Fprintln(stdout, output.StyleSuccess.Render(fmt.Sprintf("Added %d %s", count, opts.cfg.MarkerFile)))
	return nil
}

func renderTargets(cmd *cobra.Command, w *fixer.Writer, targets []scanner.Item) {
	stdout := cmd.OutOrStdout()
	if len(targets) == 0 {
		return
	}
	fmt.Fprintln(stdout, output.Section("Dry run"))
	fmt.Fprintln(stdout)

	tbl := output.NewTable("Package", "File", "Exists")
	for _, t := range targets {
		exists := output.StyleMuted.Render("no")
		if t.HasMarker {
			exists = output.StyleWarning.Render("overwrite")
		}
		tbl.AddRow(t.Package, w.MarkerPath(t), exists)
	}
	tbl.Fprint(stdout)
	fmt.Fprintln(stdout)
}
