package builder

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/stagehand/pkg/actions"
	"github.com/arthur-debert/stagehand/pkg/errors"
)

// Staging maps each root-relative target to the ordered builders that
// populate it. Targets build in lexicographic order so previews and
// execution order are reproducible across runs; source order within a
// target is preserved as written.
type Staging struct {
	targets map[string][]ActionBuilder
}

// NewStaging creates an empty staging plan.
func NewStaging() *Staging {
	return &Staging{targets: make(map[string][]ActionBuilder)}
}

// Add registers builders for a root-relative target, appending to any
// already registered for it.
func (s *Staging) Add(target string, builders ...ActionBuilder) {
	s.targets[target] = append(s.targets[target], builders...)
}

// Has reports whether the target already has builders registered.
func (s *Staging) Has(target string) bool {
	_, ok := s.targets[target]
	return ok
}

// Targets returns the registered targets in build order.
func (s *Staging) Targets() []string {
	keys := make([]string, 0, len(s.targets))
	for key := range s.targets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Build joins every target onto the staging root and produces the flat,
// ordered action list. Builder failures are collected rather than
// short-circuiting: one invalid source never hides problems in the
// remaining sources or targets.
func (s *Staging) Build(root string) ([]actions.Action, error) {
	col := errors.NewCollector()
	var built []actions.Action

	for _, target := range s.Targets() {
		targetDir := filepath.Join(root, filepath.FromSlash(target))
		for _, b := range s.targets[target] {
			acts, err := b.Build(targetDir)
			if err != nil {
				col.Push(err)
				continue
			}
			built = append(built, acts...)
		}
	}

	if err := col.Err(); err != nil {
		return nil, err
	}
	return built, nil
}
