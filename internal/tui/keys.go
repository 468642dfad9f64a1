package tui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Actions a key can trigger.
const (
	actionQuit      = "quit"
	actionHelp      = "help"
	actionClose     = "close"
	actionNextField = "next-field"
	actionPrevField = "prev-field"
	actionConfirm   = "confirm"
	actionUp        = "cursor-up"
	actionDown      = "cursor-down"
	actionSubmit    = "run-analytics"
	actionExport    = "export-chart"
	actionRescan    = "rescan"
)

// Scopes narrow a binding to the focused field.
const (
	scopeAny  = "*"
	scopeForm = "field:form"
	scopeFile = "field:file"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// ActionFor returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) ActionFor(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == scopeAny || s == scope {
			return true
		}
	}
	return false
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeAny}},
		{Keys: []string{"f1"}, Action: actionHelp, Description: "help", Scopes: []string{scopeAny}},
		{Keys: []string{"esc"}, Action: actionClose, Description: "close help", Scopes: []string{scopeAny}},
		{Keys: []string{"tab"}, Action: actionNextField, Description: "next field", Scopes: []string{scopeAny}},
		{Keys: []string{"shift+tab"}, Action: actionPrevField, Description: "previous field", Scopes: []string{scopeAny}},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "add customer", Scopes: []string{scopeForm}},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "select file", Scopes: []string{scopeFile}},
		{Keys: []string{"up"}, Action: actionUp, Description: "previous file", Scopes: []string{scopeFile}},
		{Keys: []string{"down"}, Action: actionDown, Description: "next file", Scopes: []string{scopeFile}},
		{Keys: []string{"ctrl+r"}, Action: actionSubmit, Description: "run analytics", Scopes: []string{scopeAny}},
		{Keys: []string{"ctrl+e"}, Action: actionExport, Description: "export chart", Scopes: []string{scopeAny}},
		{Keys: []string{"ctrl+l"}, Action: actionRescan, Description: "rescan files", Scopes: []string{scopeAny}},
	}
}

// ApplyKeyOverrides replaces the keys of every binding whose action appears in
// overrides. Unknown actions and empty key lists are rejected.
func ApplyKeyOverrides(bindings []KeyBinding, overrides map[string][]string) ([]KeyBinding, error) {
	known := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		known[b.Action] = true
	}

	actions := make([]string, 0, len(overrides))
	for action := range overrides {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	merged := make(map[string][]string, len(overrides))
	for _, action := range actions {
		a := strings.TrimSpace(action)
		if !known[a] {
			return nil, fmt.Errorf("unknown action %q", action)
		}
		keys := make([]string, 0, len(overrides[action]))
		for _, k := range overrides[action] {
			k = normalizeKey(k)
			if k == "" {
				return nil, fmt.Errorf("action %q: key cannot be empty", a)
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("action %q: keys are required", a)
		}
		merged[a] = keys
	}

	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        slices.Clone(b.Keys),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      slices.Clone(b.Scopes),
		}
		if keys, ok := merged[b.Action]; ok {
			next.Keys = slices.Clone(keys)
		}
		out = append(out, next)
	}
	return out, nil
}

// keyHints renders "[key] description" pairs for the bindings in scope.
func keyHints(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		parts = append(parts, "["+b.Keys[0]+"] "+b.Description)
	}
	return strings.Join(parts, "  ")
}
