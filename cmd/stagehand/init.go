package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write an example stage file",
	Long: `Init writes a small example stage file to PATH (default stage.yaml).
The format is chosen by the file extension: .yaml, .toml, or .json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "stage.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		data, err := marshalExample(path)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			return errors.Newf(errors.ErrConfigInvalid, "refusing to overwrite %s", path)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", path)
		}

		pterm.Success.Printfln("Wrote example stage file to %s", path)
		return nil
	},
}

func marshalExample(path string) ([]byte, error) {
	example := exampleStage()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(example)
	case ".toml":
		return toml.Marshal(example)
	case ".json":
		return json.MarshalIndent(example, "", "  ")
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported stage file type: %s (expected .yaml, .toml, or .json)", path)
	}
}

// exampleStage is a minimal but representative stage: one renamed binary
// with an alias, a glob-selected library set, and a symlink.
func exampleStage() map[string]interface{} {
	return map[string]interface{}{
		"/bin": []interface{}{
			map[string]interface{}{
				"type":    "file",
				"path":    "/dist/{{.version}}/mytool",
				"rename":  "mytool",
				"symlink": "mt",
			},
		},
		"/usr/lib": []interface{}{
			map[string]interface{}{
				"type":        "files",
				"path":        "/dist/{{.version}}/lib",
				"pattern":     []interface{}{"**/*.so"},
				"allow_empty": true,
			},
		},
		"/etc/mytool": []interface{}{
			map[string]interface{}{
				"type":   "symlink",
				"target": "/opt/mytool/config",
			},
		},
	}
}
