// Package uistate holds the transient interaction state of a listing page:
// the image gallery cursor, the modal lifecycle with its focus trap, and the
// pending delete confirmation. None of it is persisted.
package uistate

import "slices"

// Gallery is a circular cursor over an image sequence. The index is always
// valid for the current sequence; on an empty sequence it is 0 and every
// navigation reports absence.
type Gallery struct {
	images []string
	index  int
}

// SetImages replaces the sequence and resets the cursor to the first image.
func (g *Gallery) SetImages(images []string) {
	g.images = slices.Clone(images)
	g.index = 0
}

// Images returns a copy of the current sequence.
func (g *Gallery) Images() []string { return slices.Clone(g.images) }

// Len returns the number of images.
func (g *Gallery) Len() int { return len(g.images) }

// Index returns the cursor position.
func (g *Gallery) Index() int { return g.index }

// Current returns the image under the cursor, or false when empty.
func (g *Gallery) Current() (string, bool) {
	if len(g.images) == 0 {
		return "", false
	}
	return g.images[g.index], true
}

// Next advances the cursor, wrapping from the last image to the first.
func (g *Gallery) Next() (string, bool) {
	if len(g.images) == 0 {
		return "", false
	}
	g.index = (g.index + 1) % len(g.images)
	return g.images[g.index], true
}

// Prev moves the cursor back, wrapping from the first image to the last.
func (g *Gallery) Prev() (string, bool) {
	if len(g.images) == 0 {
		return "", false
	}
	g.index = (g.index - 1 + len(g.images)) % len(g.images)
	return g.images[g.index], true
}

// SetIndex moves the cursor to i. Out-of-range values are rejected and leave
// the cursor where it was.
func (g *Gallery) SetIndex(i int) (string, bool) {
	if i < 0 || i >= len(g.images) {
		return "", false
	}
	g.index = i
	return g.images[i], true
}
