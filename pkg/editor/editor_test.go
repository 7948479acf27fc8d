package editor

import (
	"errors"
	"testing"

	"github.com/khawkins98/ckeditor-clean-styles/pkg/cleaner/cleanstyles"
)

// hostMock is an in-memory Host for exercising the command's scope
// resolution.
type hostMock struct {
	readOnly bool

	selection    string
	selectionErr error

	document    string
	documentErr error

	replaceSelectionErr error
	replaceDocumentErr  error

	replacedSelection string
	replacedDocument  string
	selectionReplaced bool
	documentReplaced  bool
}

func (h *hostMock) ReadOnly() bool { return h.readOnly }

func (h *hostMock) SelectionHTML() (string, error) {
	return h.selection, h.selectionErr
}

func (h *hostMock) ReplaceSelection(html string) error {
	h.selectionReplaced = true
	h.replacedSelection = html
	return h.replaceSelectionErr
}

func (h *hostMock) DocumentHTML() (string, error) {
	return h.document, h.documentErr
}

func (h *hostMock) ReplaceDocument(html string) error {
	h.documentReplaced = true
	h.replacedDocument = html
	return h.replaceDocumentErr
}

// failingCleaner always errors, for the hard-failure path.
type failingCleaner struct{}

func (failingCleaner) Clean(string) (string, error) { return "", errors.New("boom") }
func (failingCleaner) Name() string                 { return "failing" }

func newCommand(t *testing.T) *Command {
	t.Helper()
	cl, err := cleanstyles.New(nil)
	if err != nil {
		t.Fatalf("cleanstyles.New: %v", err)
	}
	return NewCommand(cl)
}

func TestCommandEnabled(t *testing.T) {
	cmd := newCommand(t)

	if !cmd.Enabled(&hostMock{}) {
		t.Error("expected command enabled on writable host")
	}
	if cmd.Enabled(&hostMock{readOnly: true}) {
		t.Error("expected command disabled on read-only host")
	}
}

func TestRunReadOnlyHostUntouched(t *testing.T) {
	h := &hostMock{
		readOnly:  true,
		selection: `<p style="x">dirty</p>`,
	}
	newCommand(t).Run(h)

	if h.selectionReplaced || h.documentReplaced {
		t.Error("read-only host must not be touched")
	}
}

func TestRunCleansSelection(t *testing.T) {
	h := &hostMock{
		selection: `<span class="MsoNormal" style="margin:0cm">Hello</span>&nbsp;<span>World</span>`,
		document:  `<p>untouched</p>`,
	}
	newCommand(t).Run(h)

	if !h.selectionReplaced {
		t.Fatal("expected selection replacement")
	}
	if h.documentReplaced {
		t.Error("document must not be touched when a selection exists")
	}
	want := `<span>Hello</span> <span>World</span>`
	if h.replacedSelection != want {
		t.Errorf("expected %q, got %q", want, h.replacedSelection)
	}
}

func TestRunCollapsedSelectionCleansDocument(t *testing.T) {
	h := &hostMock{
		selection: "",
		document:  `<p class="MsoNormal">&nbsp;</p><p>Keep me</p>`,
	}
	newCommand(t).Run(h)

	if h.selectionReplaced {
		t.Error("no selection, so no selection replacement")
	}
	if !h.documentReplaced {
		t.Fatal("expected document replacement")
	}
	if want := `<p>Keep me</p>`; h.replacedDocument != want {
		t.Errorf("expected %q, got %q", want, h.replacedDocument)
	}
}

func TestRunSelectionExtractionFailureFallsBack(t *testing.T) {
	h := &hostMock{
		selectionErr: errors.New("cannot materialize range"),
		document:     `<p style="margin:0">text</p>`,
	}
	newCommand(t).Run(h)

	if h.selectionReplaced {
		t.Error("failed extraction must not replace the selection")
	}
	if !h.documentReplaced {
		t.Fatal("expected fallback to whole-document cleaning")
	}
	if want := `<p>text</p>`; h.replacedDocument != want {
		t.Errorf("expected %q, got %q", want, h.replacedDocument)
	}
}

func TestRunNoOpLeavesHostUntouched(t *testing.T) {
	t.Run("clean selection", func(t *testing.T) {
		h := &hostMock{selection: `<p>already clean</p>`}
		newCommand(t).Run(h)
		if h.selectionReplaced {
			t.Error("unchanged selection must not be replaced (no spurious undo step)")
		}
	})

	t.Run("clean document", func(t *testing.T) {
		h := &hostMock{document: `<p>already clean</p>`}
		newCommand(t).Run(h)
		if h.documentReplaced {
			t.Error("unchanged document must not be replaced")
		}
	})
}

func TestRunSwallowsFailures(t *testing.T) {
	t.Run("document read failure", func(t *testing.T) {
		h := &hostMock{documentErr: errors.New("host gone")}
		newCommand(t).Run(h) // must not panic
		if h.documentReplaced {
			t.Error("failed read must not replace the document")
		}
	})

	t.Run("cleaner failure", func(t *testing.T) {
		h := &hostMock{selection: `<p style="x">dirty</p>`}
		NewCommand(failingCleaner{}).Run(h)
		if h.selectionReplaced || h.documentReplaced {
			t.Error("cleaner failure must leave the host untouched")
		}
	})

	t.Run("replacement rejected by host", func(t *testing.T) {
		h := &hostMock{
			selection:           `<p style="x">dirty</p>`,
			replaceSelectionErr: errors.New("locked"),
		}
		newCommand(t).Run(h) // must not panic or surface the error
	})
}
