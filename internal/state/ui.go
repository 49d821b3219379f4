package state

import (
	"context"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/uistate"
)

// ---- gallery ----

// SetGalleryImages replaces the gallery sequence and resets the cursor.
func (s *State) SetGalleryImages(images []string) { s.gallery.SetImages(images) }

// OpenGallery loads the images of a listing into the gallery.
func (s *State) OpenGallery(ctx context.Context, kind domain.Kind, id string) (GalleryView, error) {
	l, err := s.coll.GetListing(ctx, kind, id)
	if err != nil {
		return GalleryView{}, err
	}
	s.gallery.SetImages(l.Images())
	return s.Gallery(), nil
}

// NextImage advances the gallery cursor circularly.
func (s *State) NextImage() (string, bool) { return s.gallery.Next() }

// PrevImage moves the gallery cursor back circularly.
func (s *State) PrevImage() (string, bool) { return s.gallery.Prev() }

// SetImageIndex moves the cursor to i; out-of-range values are rejected.
func (s *State) SetImageIndex(i int) (string, bool) { return s.gallery.SetIndex(i) }

// CurrentImage returns the image under the cursor.
func (s *State) CurrentImage() (string, bool) { return s.gallery.Current() }

// GalleryView is a read-only picture of the gallery.
type GalleryView struct {
	Images  []string `json:"images"`
	Index   int      `json:"index"`
	Current string   `json:"current,omitempty"`
}

// Gallery returns the current gallery state.
func (s *State) Gallery() GalleryView {
	cur, _ := s.gallery.Current()
	return GalleryView{Images: s.gallery.Images(), Index: s.gallery.Index(), Current: cur}
}

// ---- modal ----

// Modal exposes the modal lifecycle for presentation code.
func (s *State) Modal() *uistate.Modal { return &s.modal }

// ---- delete confirmation ----

// RequestDelete records a delete intent for the record named by target and
// id, opens the confirmation modal, and returns its prompt. The record must
// exist.
func (s *State) RequestDelete(ctx context.Context, target uistate.DeleteTarget, id string) (string, error) {
	var label string
	switch target {
	case uistate.TargetRentListing, uistate.TargetSaleListing:
		l, err := s.coll.GetListing(ctx, targetKind(target), id)
		if err != nil {
			return "", err
		}
		label = l.Title
	case uistate.TargetAgent:
		a, err := s.coll.GetAgent(ctx, id)
		if err != nil {
			return "", err
		}
		label = a.Name
	default:
		_, err := uistate.ParseDeleteTarget(string(target))
		return "", err
	}
	return s.confirm.Request(target, id, label), nil
}

// PendingDelete returns the recorded delete intent, if any.
func (s *State) PendingDelete() (uistate.Intent, bool) { return s.confirm.Pending() }

// ConfirmDelete deletes the pending record. The intent is cleared and the
// modal closed even when the delete fails. Returns uistate.ErrNothingPending
// when nothing was requested.
func (s *State) ConfirmDelete(ctx context.Context) (uistate.Intent, error) {
	var done uistate.Intent
	err := s.confirm.Confirm(func(in uistate.Intent) error {
		done = in
		if in.Target == uistate.TargetAgent {
			return s.coll.DeleteAgent(ctx, in.ID)
		}
		return s.coll.DeleteListing(ctx, targetKind(in.Target), in.ID)
	})
	return done, err
}

// CancelDelete drops the pending intent and closes the modal.
func (s *State) CancelDelete() { s.confirm.Cancel() }

func targetKind(t uistate.DeleteTarget) domain.Kind {
	if t == uistate.TargetSaleListing {
		return domain.KindSale
	}
	return domain.KindRent
}
