// Package templates renders the template-typed fields of a stage
// configuration. The engine binds an immutable variable context once and is
// a pure function of (context, template): no filesystem access, no
// control-flow extensions beyond what text/template natively offers.
package templates

import (
	"strings"
	"text/template"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

// Engine evaluates template strings against a fixed variable context.
type Engine struct {
	vars map[string]interface{}
}

// NewEngine creates an engine bound to the given variables. The map is
// copied so later mutation by the caller cannot leak into renders.
func NewEngine(vars map[string]interface{}) *Engine {
	copied := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Engine{vars: copied}
}

// Render evaluates the template string, substituting variables from the
// engine's context. A syntactically invalid template or a reference to an
// undefined variable fails with a TEMPLATE_RENDER error.
func (e *Engine) Render(tmpl string) (string, error) {
	t, err := template.New("field").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender,
			"invalid template: %q", tmpl)
	}

	var buf strings.Builder
	if err := t.Execute(&buf, e.vars); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender,
			"failed to render template: %q", tmpl)
	}
	return buf.String(), nil
}

// Template is a stage field that must be rendered before use; it is never
// interpreted directly as a path.
type Template string

// Render evaluates the template with the given engine.
func (t Template) Render(engine *Engine) (string, error) {
	return engine.Render(string(t))
}

// OneOrMany is a stage field that accepts either a single template or a
// list of templates; it always normalizes to a list at translation time.
type OneOrMany []Template

// Render evaluates every template in order with the given engine.
func (o OneOrMany) Render(engine *Engine) ([]string, error) {
	rendered := make([]string, 0, len(o))
	for _, t := range o {
		s, err := t.Render(engine)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, s)
	}
	return rendered, nil
}

// RenderOptional evaluates an optional template, returning ok=false when
// the field was absent.
func RenderOptional(t *Template, engine *Engine) (string, bool, error) {
	if t == nil {
		return "", false, nil
	}
	s, err := t.Render(engine)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}
