package services

import (
	"fmt"
	"maps"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// CaptionState is the state of a CaptionEditor.
type CaptionState int

const (
	// CaptionViewing shows captions; no edit is open.
	CaptionViewing CaptionState = iota

	// CaptionEditing has an edit open for one photo.
	CaptionEditing
)

// String returns the state name.
func (s CaptionState) String() string {
	switch s {
	case CaptionViewing:
		return "viewing"
	case CaptionEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// CaptionEditor holds local caption overrides for one preview. Captions
// are never sent to the backend. It is not safe for concurrent use; the
// owning session serialises access.
type CaptionEditor struct {
	state    CaptionState
	photoID  string
	captions map[string]string
}

// NewCaptionEditor returns an editor in the viewing state.
func NewCaptionEditor() *CaptionEditor {
	return &CaptionEditor{captions: make(map[string]string)}
}

// State returns the current state.
func (e *CaptionEditor) State() CaptionState {
	return e.state
}

// Editing returns the photo being edited.
func (e *CaptionEditor) Editing() (string, bool) {
	if e.state != CaptionEditing {
		return "", false
	}
	return e.photoID, true
}

// Begin opens an edit for photoID. An edit already open for another photo
// is abandoned.
func (e *CaptionEditor) Begin(photoID string) error {
	if photoID == "" {
		return fmt.Errorf("%w: caption edit needs a photo id", domain.ErrInvalidInput)
	}
	e.state = CaptionEditing
	e.photoID = photoID
	return nil
}

// Commit trims text, stores it for the photo being edited, overwriting any
// earlier caption, and returns to viewing. An empty result is stored too,
// which restores the default caption.
func (e *CaptionEditor) Commit(text string) error {
	if e.state != CaptionEditing {
		return domain.ErrNotEditing
	}
	e.captions[e.photoID] = strings.TrimSpace(text)
	e.state = CaptionViewing
	e.photoID = ""
	return nil
}

// Cancel returns to viewing without storing anything.
func (e *CaptionEditor) Cancel() {
	e.state = CaptionViewing
	e.photoID = ""
}

// Caption returns the non-empty override for photoID.
func (e *CaptionEditor) Caption(photoID string) (string, bool) {
	c, ok := e.captions[photoID]
	return c, ok && c != ""
}

// Initial returns the text an edit of photoID starts from: its override,
// or fallback.
func (e *CaptionEditor) Initial(photoID, fallback string) string {
	if c, ok := e.Caption(photoID); ok {
		return c
	}
	return fallback
}

// Captions returns a copy of every stored override.
func (e *CaptionEditor) Captions() map[string]string {
	return maps.Clone(e.captions)
}

// Reset drops all overrides and returns to viewing.
func (e *CaptionEditor) Reset() {
	e.Cancel()
	clear(e.captions)
}
