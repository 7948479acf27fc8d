// Package editor wires the sanitizer into a host rich-text editor. The host
// is an external collaborator: it hands over HTML to clean and takes the
// cleaned HTML back. Everything else (buttons, focus, undo grouping) stays
// on the host side.
package editor

import (
	"github.com/khawkins98/ckeditor-clean-styles/internal/logger"
	"github.com/khawkins98/ckeditor-clean-styles/pkg/cleaner"
)

// Host abstracts the embedding editor's data pipeline. Replace operations
// must apply as a single undoable edit; that atomicity is the host's
// responsibility, not the command's.
type Host interface {
	// ReadOnly reports whether the document can currently be edited.
	ReadOnly() bool

	// SelectionHTML returns the current selection serialized as HTML, or ""
	// when the selection is collapsed.
	SelectionHTML() (string, error)

	// ReplaceSelection replaces the selected range with the given HTML.
	ReplaceSelection(html string) error

	// DocumentHTML returns the whole document content serialized as HTML.
	DocumentHTML() (string, error)

	// ReplaceDocument replaces the whole document content.
	ReplaceDocument(html string) error
}

// Command is the clean-styles editor command: it resolves the cleaning scope
// from the host's selection state and applies the sanitized content back.
type Command struct {
	cleaner cleaner.Cleaner
}

// NewCommand creates the command around the given cleaner.
func NewCommand(c cleaner.Cleaner) *Command {
	return &Command{cleaner: c}
}

// Enabled reports whether the command may run: whenever the host is not
// read-only.
func (c *Command) Enabled(h Host) bool {
	return !h.ReadOnly()
}

// Run resolves scope and cleans. A non-empty selection is cleaned and
// replaced in place; a collapsed selection (or a selection the host cannot
// materialize) falls back to the whole document. Failures are logged and
// swallowed: the worst observable outcome is that nothing changed. The host
// is never touched when cleaning is a no-op, so no spurious undo step is
// created.
func (c *Command) Run(h Host) {
	if !c.Enabled(h) {
		return
	}

	sel, err := h.SelectionHTML()
	if err != nil {
		logger.Warn("selection extraction failed, falling back to document",
			"cleaner", c.cleaner.Name(), "error", err)
		sel = ""
	}

	if sel != "" {
		c.cleanSelection(h, sel)
		return
	}
	c.cleanDocument(h)
}

func (c *Command) cleanSelection(h Host, sel string) {
	cleaned, err := c.cleaner.Clean(sel)
	if err != nil {
		logger.Warn("cleaning selection failed", "cleaner", c.cleaner.Name(), "error", err)
		return
	}
	if cleaned == sel {
		return
	}
	if err := h.ReplaceSelection(cleaned); err != nil {
		logger.Warn("host rejected selection replacement", "error", err)
	}
}

func (c *Command) cleanDocument(h Host) {
	doc, err := h.DocumentHTML()
	if err != nil {
		logger.Warn("reading document failed", "cleaner", c.cleaner.Name(), "error", err)
		return
	}
	cleaned, err := c.cleaner.Clean(doc)
	if err != nil {
		logger.Warn("cleaning document failed", "cleaner", c.cleaner.Name(), "error", err)
		return
	}
	if cleaned == doc {
		return
	}
	if err := h.ReplaceDocument(cleaned); err != nil {
		logger.Warn("host rejected document replacement", "error", err)
	}
}
