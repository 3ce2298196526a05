package main

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stagehand/pkg/config"
	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/executor"
	"github.com/arthur-debert/stagehand/pkg/filesystem"
	"github.com/arthur-debert/stagehand/pkg/logging"
	"github.com/arthur-debert/stagehand/pkg/output"
	"github.com/arthur-debert/stagehand/pkg/templates"
)

var (
	outputRoot string
	dryRun     bool
	varFlags   []string
)

func init() {
	for _, cmd := range []*cobra.Command{applyCmd, previewCmd} {
		cmd.Flags().StringVarP(&outputRoot, "output", "o", "", "Staging root directory to populate")
		cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Template variable as name=value (repeatable)")
	}
	applyCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview actions without executing them")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(previewCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply STAGE_FILE",
	Short: "Build and execute the staging action list",
	Long: `Apply loads a stage file (yaml, toml, or json by extension), renders its
templates, translates it into an ordered list of filesystem actions, and
performs them under the output root. Translation reports every problem in
one pass; execution stops at the first failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(args[0], dryRun)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview STAGE_FILE",
	Short: "Show the actions a stage file would perform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(args[0], true)
	},
}

func runStage(input string, dry bool) error {
	logger := logging.GetLogger("cmd.apply")
	logger.Info().
		Str("input", input).
		Str("output", outputRoot).
		Bool("dryRun", dry).
		Msg("Starting stage run")

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	root := outputRoot
	if root == "" {
		root = settings.OutputRoot
	}
	if root == "" {
		return errors.New(errors.ErrConfigInvalid,
			"no output root: pass --output or set output_root in the settings file")
	}

	vars, err := mergeVars(settings.Vars, varFlags)
	if err != nil {
		return err
	}

	declared, err := config.LoadStage(input)
	if err != nil {
		return err
	}

	engine := templates.NewEngine(vars)
	staging, err := declared.Render(engine)
	if err != nil {
		return err
	}

	acts, err := staging.Build(root)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(os.Stdout, noColor || settings.NoColor)
	exec := executor.New(filesystem.NewOS(), renderer, dry)
	if err := exec.Execute(acts); err != nil {
		pterm.Error.Printfln("Staging failed")
		return err
	}

	if dry {
		pterm.Info.Printfln("Dry run: %d actions previewed, nothing executed", len(acts))
	} else {
		pterm.Success.Printfln("Staged %d actions into %s", len(acts), root)
	}
	return nil
}

// mergeVars layers --var flags over the settings' vars table.
func mergeVars(base map[string]interface{}, flags []string) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(base)+len(flags))
	for k, v := range base {
		merged[k] = v
	}
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, "=")
		if !found || name == "" {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"invalid --var %q, expected name=value", flag)
		}
		merged[name] = value
	}
	return merged, nil
}
