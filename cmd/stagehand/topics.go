package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

func init() {
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics [TOPIC]",
	Short: "Show documentation topics",
	Long:  `Topics lists the available documentation topics, or renders one in the terminal.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			names, err := topicNames()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		}

		content, err := docsFS.ReadFile("docs/" + args[0] + ".md")
		if err != nil {
			return errors.Newf(errors.ErrConfigInvalid,
				"unknown topic %q, run 'stagehand topics' to list them", args[0])
		}

		if noColor {
			fmt.Fprint(cmd.OutOrStdout(), string(content))
			return nil
		}

		rendered, err := glamour.Render(string(content), "auto")
		if err != nil {
			// Fall back to the raw markdown rather than failing the command.
			fmt.Fprint(cmd.OutOrStdout(), string(content))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func topicNames() ([]string, error) {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read embedded docs")
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}
