package session

import "matchman/pkg/types"

// Presenter is the contract the presentation layers (GUI, TUI) program
// against. The controller is the only implementation; the interface keeps
// the rendering code free of storage concerns.
type Presenter interface {
	Files() []string
	Selected() string
	SelectFile(name string) error
	SetFilter(text string)
	FilteredMatches() []types.Entry
	BeginEdit(filteredIndex int) error
	CommitDraft(trigger, replace string) error
	CancelEdit()
	DeleteAt(filteredIndex int) error
	Refresh()
	OpenConfigFolder() error
	Status() types.LoadStatus
	StatusLine() string
}

var _ Presenter = (*Controller)(nil)
