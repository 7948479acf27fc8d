// Package cleanstyles strips word-processor export artifacts from HTML
// fragments: inline styles, vendor CSS classes, vendor attributes and
// namespaced elements, non-breaking-space entities, and the block elements
// those removals leave empty. It is not a security sanitizer.
package cleanstyles

// RuleSet describes what counts as an artifact. It is pure data so it can be
// loaded from YAML or JSON rule files; compiled forms live on the Cleaner.
// A RuleSet is never mutated during a cleaning pass.
type RuleSet struct {
	// VendorClassSubstrings are lowercase substrings identifying vendor CSS
	// class tokens. Matching is substring, not exact: a token containing
	// "mso" anywhere (MsoNormal, msolistparagraph) is dropped.
	VendorClassSubstrings []string `json:"vendor_class_substrings" yaml:"vendor_class_substrings"`

	// RemoveAttributes are attribute names removed unconditionally wherever
	// they appear (document-authoring metadata: lang, paraid, ...).
	RemoveAttributes []string `json:"remove_attributes" yaml:"remove_attributes"`

	// HRAttributes are legacy presentational attributes stripped from <hr>
	// elements only. The element itself is kept.
	HRAttributes []string `json:"hr_attributes" yaml:"hr_attributes"`

	// VendorIDPattern matches id values generated by the authoring tool
	// (OLE_LINK1, _Toc12345). Ids whose value contains "mso" are removed
	// regardless of this pattern.
	VendorIDPattern string `json:"vendor_id_pattern" yaml:"vendor_id_pattern" validate:"omitempty,regexp"`

	// VendorAnchorPattern matches name attribute values of generated anchors.
	VendorAnchorPattern string `json:"vendor_anchor_pattern" yaml:"vendor_anchor_pattern" validate:"omitempty,regexp"`

	// NamespacePrefixes are vendor XML namespace prefixes. Attributes with
	// these prefixes (o:p, v:shapes, xml:lang) and all xmlns declarations are
	// removed; elements with these tag prefixes (<o:p>) are unwrapped.
	NamespacePrefixes []string `json:"namespace_prefixes" yaml:"namespace_prefixes"`

	// PruneBlockTags are paragraph-level tags removed when cleaning leaves
	// them empty (no text, no children other than <br>).
	PruneBlockTags []string `json:"prune_block_tags" yaml:"prune_block_tags"`

	// DropElements are removed wholesale with their contents. Word pastes
	// carry document chrome (<style>, <xml>, <meta>, <link>) that has no
	// place inside an edited fragment.
	DropElements []string `json:"drop_elements" yaml:"drop_elements"`

	// StripConditionalComments removes <!--[if gte mso 9]>...<![endif]-->
	// comments and the downlevel markup they guard.
	StripConditionalComments bool `json:"strip_conditional_comments" yaml:"strip_conditional_comments"`

	// Debug enables per-removal logging.
	Debug bool `json:"debug" yaml:"debug"`
}

// eventHandlerPrefix marks inline event handler attributes (onclick, onpaste).
const eventHandlerPrefix = "on"

// vendorProductToken appearing anywhere in an id value marks it as generated
// (for example _msocom_1 comment anchors).
const vendorProductToken = "mso"

// DefaultRuleSet returns the reference rule table: the broadest coverage
// observed across Word, Word Online, and Apple rich-text exports.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		VendorClassSubstrings: []string{
			"mso",
			"apple-style-span",
			"apple-converted-space",
		},
		RemoveAttributes: []string{
			"lang",
			"xml:lang",
			// Word Online paragraph identity and formatting hints
			"paraid",
			"paraeid",
			"data-contrast",
			"data-ccp-props",
			"data-ccp-charstyle",
			"data-ccp-parastyle",
		},
		HRAttributes: []string{
			"align", "size", "width", "color", "noshade",
		},
		VendorIDPattern:     `(?i)^(OLE_LINK|_Toc|_Ref|_Hlk|_GoBack)\d*$`,
		VendorAnchorPattern: `(?i)^(OLE_LINK|_Toc|_Ref|_Hlk|_GoBack|_mso)\w*$`,
		NamespacePrefixes:   []string{"o", "v", "w", "x", "xml"},
		PruneBlockTags:      []string{"p"},
		DropElements:        []string{"style", "xml", "meta", "link"},

		StripConditionalComments: true,
	}
}

// LegacyRuleSet reproduces the narrowest shipped rule table: inline styles,
// Mso classes, and lang only.
//
// Deprecated: kept for parity with older deployments. New callers should use
// DefaultRuleSet.
func LegacyRuleSet() *RuleSet {
	return &RuleSet{
		VendorClassSubstrings: []string{"mso"},
		RemoveAttributes:      []string{"lang"},
		PruneBlockTags:        []string{"p"},
	}
}

// Merge merges another rule set into this one and returns the result.
// List fields are appended (deduplicated); non-empty scalar fields from
// other win; booleans are ORed. Neither receiver nor argument is modified.
func (r *RuleSet) Merge(other *RuleSet) *RuleSet {
	if other == nil {
		return r
	}

	merged := *r

	merged.VendorClassSubstrings = appendUnique(merged.VendorClassSubstrings, other.VendorClassSubstrings)
	merged.RemoveAttributes = appendUnique(merged.RemoveAttributes, other.RemoveAttributes)
	merged.HRAttributes = appendUnique(merged.HRAttributes, other.HRAttributes)
	merged.NamespacePrefixes = appendUnique(merged.NamespacePrefixes, other.NamespacePrefixes)
	merged.PruneBlockTags = appendUnique(merged.PruneBlockTags, other.PruneBlockTags)
	merged.DropElements = appendUnique(merged.DropElements, other.DropElements)

	if other.VendorIDPattern != "" {
		merged.VendorIDPattern = other.VendorIDPattern
	}
	if other.VendorAnchorPattern != "" {
		merged.VendorAnchorPattern = other.VendorAnchorPattern
	}
	if other.StripConditionalComments {
		merged.StripConditionalComments = true
	}
	if other.Debug {
		merged.Debug = true
	}

	return &merged
}

func appendUnique(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]bool, len(dst))
	out := make([]string, 0, len(dst)+len(src))
	for _, s := range dst {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	for _, s := range src {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}
