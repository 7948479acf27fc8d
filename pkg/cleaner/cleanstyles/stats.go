package cleanstyles

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures what one cleaning pass did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// Attribute cleaning
	AttributesRemoved  int `json:"attributes_removed"`
	ClassTokensDropped int `json:"class_tokens_dropped"`

	// Text normalization
	EntitiesNormalized int `json:"entities_normalized"`

	// Node removals
	ElementsDropped   map[string]int `json:"elements_dropped"` // tag -> count
	ElementsUnwrapped int            `json:"elements_unwrapped"`
	CommentsStripped  int            `json:"comments_stripped"`
	EmptyBlocksPruned int            `json:"empty_blocks_pruned"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ms"`
	TransformDuration time.Duration `json:"transform_duration_ms"`
	OutputDuration    time.Duration `json:"output_duration_ms"`
	TotalDuration     time.Duration `json:"total_duration_ms"`
}

// NewStats creates a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsDropped: make(map[string]int),
	}
}

// RecordDrop records that an element was removed wholesale.
func (s *Stats) RecordDrop(tag string) {
	s.ElementsDropped[strings.ToLower(tag)]++
}

// TotalElementsDropped returns the sum of all dropped elements.
func (s *Stats) TotalElementsDropped() int {
	total := 0
	for _, count := range s.ElementsDropped {
		total += count
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))

	sb.WriteString(fmt.Sprintf("Attributes removed: %d (class tokens: %d)\n",
		s.AttributesRemoved, s.ClassTokensDropped))

	if s.EntitiesNormalized > 0 {
		sb.WriteString(fmt.Sprintf("Entities normalized: %d\n", s.EntitiesNormalized))
	}

	if len(s.ElementsDropped) > 0 {
		tags := make([]string, 0, len(s.ElementsDropped))
		for tag := range s.ElementsDropped {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsDropped[tag]))
		}
		sb.WriteString("Dropped by tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.ElementsUnwrapped > 0 {
		sb.WriteString(fmt.Sprintf("Vendor elements unwrapped: %d\n", s.ElementsUnwrapped))
	}
	if s.CommentsStripped > 0 {
		sb.WriteString(fmt.Sprintf("Conditional comments stripped: %d\n", s.CommentsStripped))
	}
	if s.EmptyBlocksPruned > 0 {
		sb.WriteString(fmt.Sprintf("Empty blocks pruned: %d\n", s.EmptyBlocksPruned))
	}

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.TransformDuration.Round(time.Millisecond),
		s.OutputDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase"`   // "parse", "transform", "output"
	Message string `json:"message"` // Human-readable description
	Context string `json:"context"` // Detail that caused the issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning pass.
type Result struct {
	// Content is the cleaned output. On parse or output failure this is the
	// original input, byte for byte.
	Content string `json:"content"`

	// Changed reports whether Content differs from the input. Hosts use it
	// to skip the content replacement (and its undo step) on no-op passes.
	Changed bool `json:"changed"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty"`

	// Error is set only on catastrophic failures (Content is still returned).
	Error error `json:"error,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
