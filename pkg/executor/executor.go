// Package executor drives the ordered action list against the filesystem.
// Unlike translation, which aggregates every failure, execution is
// fail-fast: the first action that cannot be performed aborts the run.
package executor

import (
	"github.com/arthur-debert/stagehand/pkg/actions"
	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/logging"
	"github.com/arthur-debert/stagehand/pkg/output"
	"github.com/arthur-debert/stagehand/pkg/types"
)

// Executor performs or previews a list of actions in order.
type Executor struct {
	fs       types.FS
	renderer *output.Renderer
	dryRun   bool
}

// New creates an executor. With dryRun set, actions are previewed but
// never performed.
func New(fs types.FS, renderer *output.Renderer, dryRun bool) *Executor {
	return &Executor{
		fs:       fs,
		renderer: renderer,
		dryRun:   dryRun,
	}
}

// Execute walks the action list in order. Every action's preview is
// emitted, dry-run or not, so both modes produce identical output; the
// first execution failure is wrapped with the failing action's preview and
// aborts the remaining actions.
func (e *Executor) Execute(list []actions.Action) error {
	logger := logging.GetLogger("executor").With().
		Int("actions", len(list)).
		Bool("dryRun", e.dryRun).
		Logger()
	defer logging.LogOperationStart(logger, "execute")()

	for _, action := range list {
		preview := action.String()
		e.renderer.Action(preview)
		logger.Debug().Str("action", preview).Msg("Action")

		if e.dryRun {
			continue
		}
		if err := action.Perform(e.fs); err != nil {
			return errors.Wrapf(err, errors.ErrActionExecute,
				"failed staging files: %s", preview)
		}
	}

	return nil
}
