package tui

import "fmt"

// IsSupported reports whether viewType has a TUI model.
func IsSupported(viewType string) bool {
	switch viewType {
	case "inspect":
		return true
	default:
		return false
	}
}

// Run starts the TUI for viewType.
func Run(viewType string, data any) error {
	switch viewType {
	case "inspect":
		return RunInspect(data)
	default:
		return fmt.Errorf("unknown view type: %s", viewType)
	}
}
