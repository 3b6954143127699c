package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/unified-scanner/internal/version"
	"github.com/arthur-debert/unified-scanner/pkg/config"
	"github.com/arthur-debert/unified-scanner/pkg/core"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/arthur-debert/unified-scanner/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the persistent flag values shared by every subcommand
type options struct {
	verbosity int
	input     string
	output    string
	format    string
	noLock    bool
}

// NewRootCmd creates and returns the root command. Running it without a
// subcommand performs a scan.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "unified-scanner",
		Short: "Dump every project in a directory to one text file each",
		Long: `unified-scanner walks each project directory under the input directory,
detects what kind of project it is, and writes a single text file per
project containing a directory tree and the contents of every source file.

Settings come from built-in defaults, an optional .unified-scanner.toml in
the working directory, the INPUT_DIR and OUTPUT_DIR environment variables
and finally the command line flags.`,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVarP(&opts.input, "input", "i", "", "Directory holding one subdirectory per project (default ./input)")
	flags.StringVarP(&opts.output, "output", "o", "", "Directory receiving the scan files (default ./output)")
	flags.StringVar(&opts.format, "format", "", "Output format: auto, term, text or json (default auto)")
	flags.BoolVar(&opts.noLock, "no-lock", false, "Do not take the per-output-directory run lock")

	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newDetectCmd(opts))
	rootCmd.AddCommand(newDefaultsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// flagOverrides returns the koanf keys for flags the user actually set,
// so that unset flags do not shadow the file or the environment.
func flagOverrides(cmd *cobra.Command, opts *options) map[string]interface{} {
	flags := cmd.Flags()
	overrides := map[string]interface{}{}
	if flags.Changed("input") {
		overrides["input_dir"] = opts.input
	}
	if flags.Changed("output") {
		overrides["output_dir"] = opts.output
	}
	if flags.Changed("format") {
		overrides["format"] = opts.format
	}
	if flags.Changed("no-lock") {
		overrides["lock"] = !opts.noLock
	}
	return overrides
}

func loadRunConfig(cmd *cobra.Command, opts *options) (*config.RunConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.LoadRunConfig(wd, flagOverrides(cmd, opts))
}

func newRenderer(cmd *cobra.Command, name string) (ui.Renderer, ui.Format, error) {
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, format, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	return renderer, format, err
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan every project under the input directory",
		Long: `Scan treats each immediate subdirectory of the input directory as a
project and writes <output>/<project>_unified_scan.txt for it. A project
that fails is reported and skipped; the run fails only when no project
could be scanned.`,
		Example: `  # Scan ./input into ./output
  unified-scanner scan

  # Scan another tree, JSON summary on stdout
  unified-scanner scan -i ~/src -o /tmp/dumps --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}
}

func runScan(cmd *cobra.Command, opts *options) error {
	logger := logging.GetLogger("cli.scan")

	cfg, err := loadRunConfig(cmd, opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	renderer, format, err := newRenderer(cmd, cfg.Format)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	lockPath := ""
	if cfg.Lock {
		lockPath, err = core.LockPathFor(cfg.OutputDir)
		if err != nil {
			_ = renderer.RenderError(err)
			return err
		}
	}

	logger.Info().
		Str("input", cfg.InputDir).
		Str("output", cfg.OutputDir).
		Str("format", format.String()).
		Bool("lock", cfg.Lock).
		Msg("Starting scan")

	if format != ui.FormatJSON {
		_ = renderer.RenderMessage(fmt.Sprintf("Input directory: %s", absOrSelf(cfg.InputDir)))
		_ = renderer.RenderMessage(fmt.Sprintf("Output directory: %s", absOrSelf(cfg.OutputDir)))
	}

	result, err := core.ScanProjects(core.ScanProjectsOptions{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		LockPath:  lockPath,
		OnProject: func(p types.ProjectResult) {
			if renderErr := renderer.RenderProject(p); renderErr != nil {
				logger.Warn().Err(renderErr).Str("project", p.Name).Msg("Failed to render project result")
			}
		},
	})
	if result != nil {
		if renderErr := renderer.RenderResult(result); renderErr != nil {
			logger.Warn().Err(renderErr).Msg("Failed to render run result")
		}
	}
	if err != nil {
		_ = renderer.RenderError(err)
		return err
	}
	return nil
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func newDetectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <dir>",
		Short: "Show how a directory would be classified",
		Long: `Detect runs the project classifier on one directory and prints the
detected labels, the marker files that matched, the resulting scan
configuration and any .scanner-config.json override found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			renderer, _, err := newRenderer(cmd, cfg.Format)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}

			result, err := core.DetectProject(core.DetectProjectOptions{Dir: args[0]})
			if err != nil {
				_ = renderer.RenderError(err)
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in scan policy",
		Long: `Print the built-in scan policy: the baseline extension, ignore and
size settings plus the per-project-type overlays. A project can extend or
replace parts of it with a .scanner-config.json at its root.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultsContent())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "unified-scanner version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `To load completions:

Bash:
  $ source <(unified-scanner completion bash)

Zsh:
  $ unified-scanner completion zsh > "${fpath[1]}/_unified-scanner"

Fish:
  $ unified-scanner completion fish | source

PowerShell:
  PS> unified-scanner completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
