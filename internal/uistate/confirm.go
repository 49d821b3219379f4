package uistate

import (
	"errors"
	"fmt"
)

// ConfirmModalID is the modal opened for delete confirmations.
const ConfirmModalID = "confirmModal"

// ErrNothingPending is returned by Confirm when no delete was requested.
var ErrNothingPending = errors.New("no delete pending")

// DeleteTarget names the kind of record a delete refers to.
type DeleteTarget string

const (
	TargetRentListing DeleteTarget = "rent"
	TargetSaleListing DeleteTarget = "sale"
	TargetAgent       DeleteTarget = "agent"
)

// ParseDeleteTarget validates s as a delete target.
func ParseDeleteTarget(s string) (DeleteTarget, error) {
	switch t := DeleteTarget(s); t {
	case TargetRentListing, TargetSaleListing, TargetAgent:
		return t, nil
	}
	return "", fmt.Errorf("unknown delete target %q", s)
}

// Intent is a pending delete.
type Intent struct {
	Target DeleteTarget `json:"target"`
	ID     string       `json:"id"`
	Label  string       `json:"label"`
}

// DeleteConfirm records which record the user asked to delete until they
// confirm or cancel. It drives the shared Modal.
type DeleteConfirm struct {
	modal   *Modal
	pending *Intent
}

// NewDeleteConfirm returns a DeleteConfirm that opens and closes modal.
func NewDeleteConfirm(modal *Modal) *DeleteConfirm {
	return &DeleteConfirm{modal: modal}
}

// Message returns the confirmation prompt for an intent.
func (in Intent) Message() string {
	if in.Target == TargetAgent {
		return fmt.Sprintf("Are you sure you want to delete agent %q? This action cannot be undone.", in.Label)
	}
	return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", in.Label)
}

// Request records the intent, opens the confirm modal, and returns the
// prompt. A new request replaces any earlier one.
func (d *DeleteConfirm) Request(target DeleteTarget, id, label string) string {
	in := Intent{Target: target, ID: id, Label: label}
	d.pending = &in
	d.modal.Open(ConfirmModalID, []string{"confirmCancel", "confirmDelete"}, "")
	return in.Message()
}

// Pending returns the recorded intent, if any.
func (d *DeleteConfirm) Pending() (Intent, bool) {
	if d.pending == nil {
		return Intent{}, false
	}
	return *d.pending, true
}

// Confirm runs del for the pending intent. The intent is cleared and the
// modal closed whether or not del succeeds.
func (d *DeleteConfirm) Confirm(del func(Intent) error) error {
	in := d.pending
	d.pending = nil
	d.modal.Close()
	if in == nil {
		return ErrNothingPending
	}
	return del(*in)
}

// Cancel drops the pending intent and closes the modal.
func (d *DeleteConfirm) Cancel() {
	d.pending = nil
	d.modal.Close()
}
