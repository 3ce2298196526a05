package config

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/stage"
	"github.com/arthur-debert/stagehand/pkg/templates"
)

// stageParser unmarshals raw stage-file bytes into a generic map; the
// typed model is decoded from that map so all three formats share one
// decoding path.
type stageParser interface {
	Unmarshal([]byte) (map[string]interface{}, error)
}

// parserFor selects a parser by file extension.
func parserFor(path string) (stageParser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported stage file type: %s (expected .yaml, .toml, or .json)", path)
	}
}

// LoadStage reads and decodes a stage file.
func LoadStage(path string) (stage.Stage, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	raw, err := parser.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	return DecodeStage(raw)
}

// DecodeStage turns the generic representation of a stage file into the
// typed model. Decoding problems are collected across all targets and
// sources so one pass reports every malformed entry.
func DecodeStage(raw map[string]interface{}) (stage.Stage, error) {
	col := errors.NewCollector()
	decoded := make(stage.Stage, len(raw))

	targets := make([]string, 0, len(raw))
	for target := range raw {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		list, ok := raw[target].([]interface{})
		if !ok {
			col.Push(errors.Newf(errors.ErrConfigInvalid,
				"target %q must hold a list of sources", target))
			continue
		}

		sources := make([]stage.Source, 0, len(list))
		for i, item := range list {
			src, err := decodeSource(item)
			if err != nil {
				col.Push(errors.Wrapf(err, errors.ErrConfigInvalid,
					"target %q, source %d", target, i+1))
				continue
			}
			sources = append(sources, src)
		}
		decoded[target] = sources
	}

	if err := col.Err(); err != nil {
		return nil, err
	}
	return decoded, nil
}

// decodeSource dispatches on the source's type tag and decodes the
// remaining fields into the matching variant. Unknown fields are errors,
// so typos in a stage file surface instead of being silently dropped.
func decodeSource(item interface{}) (stage.Source, error) {
	fields, ok := item.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfigInvalid, "source must be a table of fields")
	}

	typeTag, _ := fields["type"].(string)
	if typeTag == "" {
		return nil, errors.New(errors.ErrConfigInvalid, `source is missing the "type" field`)
	}

	var dst stage.Source
	switch strings.ToLower(typeTag) {
	case "directory":
		dst = &stage.Directory{}
	case "file":
		dst = &stage.SourceFile{}
	case "files":
		dst = &stage.SourceFiles{}
	case "symlink":
		dst = &stage.Symlink{}
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"unknown source type %q (expected directory, file, files, or symlink)", typeTag)
	}

	rest := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if k != "type" {
			rest[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      dst,
		ErrorUnused: true,
		DecodeHook:  oneOrManyHook(),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to build source decoder")
	}
	if err := decoder.Decode(rest); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
			"invalid %q source", typeTag)
	}
	return dst, nil
}

// oneOrManyHook lets a OneOrMany field accept a single scalar where a
// list is expected.
func oneOrManyHook() mapstructure.DecodeHookFuncType {
	oneOrMany := reflect.TypeOf(templates.OneOrMany{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != oneOrMany || from.Kind() != reflect.String {
			return data, nil
		}
		return []interface{}{data}, nil
	}
}
