package core

const (
	ScopeList   = "screen:list"
	ScopeAdd    = "screen:add"
	ScopeDetail = "screen:detail"
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"up", "k"}, Action: "row-up", Description: "up", Scopes: []string{ScopeList}},
		{Keys: []string{"down", "j"}, Action: "row-down", Description: "down", Scopes: []string{ScopeList}},
		{Keys: []string{"enter"}, Action: "open-detail", Description: "open", Scopes: []string{ScopeList}},
		{Keys: []string{"n", "+"}, Action: "add-task", Description: "new task", Scopes: []string{ScopeList}},
		{Keys: []string{"esc"}, Action: "back", Description: "back", Scopes: []string{ScopeAdd, ScopeDetail}},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{ScopeList, ScopeDetail}},
		{Keys: []string{"ctrl+c"}, Action: "force-quit", Scopes: []string{"*"}},
	}
}

// ApplyActionKeybindings replaces the keys of every binding whose action
// appears in actionKeys.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
