// Package stage holds the declarative staging model: for each logical
// target directory, the ordered sources that populate it. Every path-like
// field is a template and must be rendered before use. The model is built
// once from configuration, never mutated, and consumed exactly once by
// Render to produce a staging plan.
package stage

import (
	"sort"

	"github.com/arthur-debert/stagehand/pkg/builder"
	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/logging"
	"github.com/arthur-debert/stagehand/pkg/paths"
	"github.com/arthur-debert/stagehand/pkg/templates"
)

// Stage maps each logical target to its sources. Keys are templates that
// must render to absolute paths, treating the stage as the filesystem
// root; they are normalized to root-relative paths during Render.
type Stage map[string][]Source

// Source is one declarative descriptor of content to place under a
// target. The variant set is closed: Directory, SourceFile, SourceFiles,
// and Symlink.
type Source interface {
	// Render evaluates the descriptor's templates and returns its
	// concrete builder.
	Render(engine *templates.Engine) (builder.ActionBuilder, error)
}

// Render translates the whole stage into a staging plan. Failures are
// collected across both fan-out points (targets, and sources within each
// target) so one run reports every invalid target, invalid source, and
// rendering error together.
func (s Stage) Render(engine *templates.Engine) (*builder.Staging, error) {
	logger := logging.GetLogger("stage.render")

	col := errors.NewCollector()
	staging := builder.NewStaging()

	// Iterate raw keys in sorted order so error reports are stable.
	rawTargets := make([]string, 0, len(s))
	for raw := range s {
		rawTargets = append(rawTargets, raw)
	}
	sort.Strings(rawTargets)

	for _, raw := range rawTargets {
		target, err := renderTarget(raw, engine)
		if err != nil {
			col.Push(err)
			continue
		}
		if staging.Has(target) {
			col.Push(errors.Newf(errors.ErrTargetDuplicate,
				"target %q renders to %q, which another target already uses", raw, target))
			continue
		}

		var builders []builder.ActionBuilder
		for _, src := range s[raw] {
			b, err := src.Render(engine)
			if err != nil {
				col.Push(err)
				continue
			}
			builders = append(builders, b)
		}
		staging.Add(target, builders...)
	}

	if err := col.Err(); err != nil {
		return nil, err
	}

	logger.Debug().Int("targets", len(s)).Msg("Stage rendered")
	return staging, nil
}

// renderTarget evaluates a target key and confines it to the staging root.
func renderTarget(raw string, engine *templates.Engine) (string, error) {
	rendered, err := engine.Render(raw)
	if err != nil {
		return "", err
	}
	return paths.AbsToRel(rendered)
}
