package cleanstyles

import (
	"errors"
	"strings"
	"testing"
)

func TestStatsReductionPercent(t *testing.T) {
	s := &Stats{InputBytes: 200, OutputBytes: 50}
	if got := s.ReductionPercent(); got != 75 {
		t.Errorf("expected 75%%, got %v", got)
	}

	empty := &Stats{}
	if got := empty.ReductionPercent(); got != 0 {
		t.Errorf("expected 0%% for empty input, got %v", got)
	}
}

func TestStatsRecordDrop(t *testing.T) {
	s := NewStats()
	s.RecordDrop("STYLE")
	s.RecordDrop("style")
	s.RecordDrop("xml")

	if s.ElementsDropped["style"] != 2 {
		t.Errorf("expected style=2, got %d", s.ElementsDropped["style"])
	}
	if s.TotalElementsDropped() != 3 {
		t.Errorf("expected 3 total drops, got %d", s.TotalElementsDropped())
	}
}

func TestStatsString(t *testing.T) {
	s := NewStats()
	s.InputBytes = 100
	s.OutputBytes = 60
	s.AttributesRemoved = 3
	s.EmptyBlocksPruned = 1
	s.RecordDrop("style")

	out := s.String()
	for _, want := range []string{"100 -> 60", "40.0% reduction", "Attributes removed: 3", "style=1", "Empty blocks pruned: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stats summary:\n%s", want, out)
		}
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Phase: "parse", Message: "failed"}
	if got := w.String(); got != "[parse] failed" {
		t.Errorf("unexpected warning string: %q", got)
	}

	w.Context = "detail"
	if got := w.String(); got != "[parse] failed (context: detail)" {
		t.Errorf("unexpected warning string: %q", got)
	}
}

func TestResultWarnings(t *testing.T) {
	r := &Result{}
	if r.HasWarnings() {
		t.Error("fresh result should have no warnings")
	}

	r.AddWarning("output", "serialization failed", errors.New("boom").Error())
	if !r.HasWarnings() {
		t.Error("expected a warning")
	}
	if r.Warnings[0].Phase != "output" {
		t.Errorf("unexpected phase: %q", r.Warnings[0].Phase)
	}
}
