package uistate

import "slices"

// Modal tracks which dialog is open and keeps keyboard focus inside it.
//
// Opening a modal locks page scroll and focuses its first focusable element.
// Tab from the last element wraps to the first; Shift+Tab from the first
// wraps to the last. Closing restores the element focused before opening.
type Modal struct {
	id         string
	focusables []string
	focus      int
	restore    string
}

// Open shows the modal identified by id. focusables lists the focus targets
// inside it in tab order; previous is the element focused before opening.
func (m *Modal) Open(id string, focusables []string, previous string) {
	m.id = id
	m.focusables = slices.Clone(focusables)
	m.focus = 0
	m.restore = previous
}

// Close hides the modal and returns the element that should regain focus.
// Closing an already-closed modal is a no-op.
func (m *Modal) Close() string {
	if m.id == "" {
		return ""
	}
	r := m.restore
	*m = Modal{}
	return r
}

// IsOpen reports whether any modal is shown.
func (m *Modal) IsOpen() bool { return m.id != "" }

// ID returns the open modal's id, or "" when closed.
func (m *Modal) ID() string { return m.id }

// ScrollLocked reports whether page scrolling is suppressed.
func (m *Modal) ScrollLocked() bool { return m.IsOpen() }

// Focused returns the element that currently has focus inside the modal.
func (m *Modal) Focused() (string, bool) {
	if !m.IsOpen() || len(m.focusables) == 0 {
		return "", false
	}
	return m.focusables[m.focus], true
}

// Tab moves focus forward, or backward when shift is set, wrapping at the
// ends of the focus list.
func (m *Modal) Tab(shift bool) (string, bool) {
	n := len(m.focusables)
	if !m.IsOpen() || n == 0 {
		return "", false
	}
	if shift {
		m.focus = (m.focus - 1 + n) % n
	} else {
		m.focus = (m.focus + 1) % n
	}
	return m.focusables[m.focus], true
}

// Escape closes the modal, as the Escape key does.
func (m *Modal) Escape() string { return m.Close() }
