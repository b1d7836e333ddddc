package domain

// ResolvedIntent is the structured form of one user prompt.
// Action is either a name from the ActionSchema or ActionUnknown.
type ResolvedIntent struct {
	Action string         `json:"intent"`
	Params map[string]any `json:"params"`
}

// UnknownIntent returns the sentinel intent used when classification fails.
func UnknownIntent() ResolvedIntent {
	return ResolvedIntent{Action: ActionUnknown, Params: map[string]any{}}
}

// IsUnknown reports whether the intent carries the unknown sentinel.
func (i ResolvedIntent) IsUnknown() bool {
	return i.Action == ActionUnknown || i.Action == ""
}
