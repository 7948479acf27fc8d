package cleanstyles

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/khawkins98/ckeditor-clean-styles/internal/logger"
)

// Cleaner strips authoring artifacts from HTML fragments according to an
// immutable, pre-compiled rule set. It implements the cleaner.Cleaner
// interface. A Cleaner is safe to reuse; each Clean call builds and discards
// its own tree.
type Cleaner struct {
	rules *RuleSet

	idPattern     *regexp.Regexp // nil when unset
	anchorPattern *regexp.Regexp // nil when unset

	classSubstrings []string
	removeAttrs     map[string]bool
	hrAttrs         map[string]bool
	nsPrefixes      map[string]bool

	stats *Stats
}

// New creates a Cleaner from the given rule set, compiling its patterns.
// A nil rule set means DefaultRuleSet().
func New(rules *RuleSet) (*Cleaner, error) {
	if rules == nil {
		rules = DefaultRuleSet()
	}

	c := &Cleaner{
		rules:       rules,
		removeAttrs: lowerSet(rules.RemoveAttributes),
		hrAttrs:     lowerSet(rules.HRAttributes),
		nsPrefixes:  lowerSet(rules.NamespacePrefixes),
	}

	for _, sub := range rules.VendorClassSubstrings {
		c.classSubstrings = append(c.classSubstrings, strings.ToLower(sub))
	}

	var err error
	if rules.VendorIDPattern != "" {
		if c.idPattern, err = regexp.Compile(rules.VendorIDPattern); err != nil {
			return nil, fmt.Errorf("compiling vendor id pattern: %w", err)
		}
	}
	if rules.VendorAnchorPattern != "" {
		if c.anchorPattern, err = regexp.Compile(rules.VendorAnchorPattern); err != nil {
			return nil, fmt.Errorf("compiling vendor anchor pattern: %w", err)
		}
	}

	return c, nil
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "cleanstyles"
}

// Clean sanitizes the input fragment. On internal failure the original
// input is returned unchanged; the error return exists to satisfy the
// cleaner.Cleaner interface and is always nil.
func (c *Cleaner) Clean(html string) (string, error) {
	result := c.CleanWithStats(html)
	return result.Content, nil
}

// Stats returns the stats from the last Clean operation.
func (c *Cleaner) Stats() *Stats {
	return c.stats
}

// CleanWithStats runs the full pipeline and returns detailed stats:
// entity normalization, parse, element cleaning, node passes, empty-block
// pruning, serialization.
func (c *Cleaner) CleanWithStats(input string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(input)

	// NBSP forms must be gone before pruning, so a paragraph holding only a
	// placeholder space reads as whitespace-only.
	result.Stats.EntitiesNormalized = countNBSP(input)
	normalized := NormalizeEntities(input)

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(normalized))
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		// Graceful degradation: hand the original back untouched.
		result.Content = input
		result.Changed = false
		result.AddWarning("parse", "HTML parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(input)
		result.Stats.TotalDuration = time.Since(startTime)
		c.stats = result.Stats
		return result
	}

	transformStart := time.Now()
	c.transform(doc, result)
	result.Stats.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	output, err := doc.Find("body").Html()
	result.Stats.OutputDuration = time.Since(outputStart)

	if err != nil {
		result.Content = input
		result.AddWarning("output", "serialization failed, returning original", err.Error())
		result.Stats.OutputBytes = len(input)
	} else {
		result.Content = output
		result.Stats.OutputBytes = len(output)
	}

	result.Changed = result.Content != input
	result.Stats.TotalDuration = time.Since(startTime)
	c.stats = result.Stats

	return result
}

// transform applies all passes to the document. Element removal never
// happens inside the attribute pass; drops, unwraps, and pruning are their
// own passes.
func (c *Cleaner) transform(doc *goquery.Document, result *Result) {
	// 1. Drop vendor document chrome wholesale.
	for _, tag := range c.rules.DropElements {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			result.Stats.RecordDrop(tag)
			s.Remove()
		})
	}

	root := rootNode(doc)

	// 2. Strip conditional comments and their downlevel payload.
	if c.rules.StripConditionalComments && root != nil {
		stripConditionalComments(root, result.Stats)
	}

	// 3. Unwrap vendor-namespaced elements (<o:p>), keeping their children.
	if len(c.nsPrefixes) > 0 && root != nil {
		unwrapVendorElements(root, c.nsPrefixes, result.Stats)
	}

	// 4. Attribute and class cleanup, element-local.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		c.cleanElement(s, result)
	})

	// 5. Prune blocks the cleanup left empty.
	c.pruneEmptyBlocks(doc, result)
}

// cleanElement applies the attribute rules to one element. Order of the
// surviving attributes is preserved.
func (c *Cleaner) cleanElement(s *goquery.Selection, result *Result) {
	n := s.Nodes[0]
	if n.Type != html.ElementNode {
		return
	}
	tag := strings.ToLower(n.Data)

	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if attr.Namespace != "" {
			// Foreign-content attributes keep their prefix in Namespace.
			key = strings.ToLower(attr.Namespace) + ":" + key
		}

		if key == "class" {
			filtered, dropped := c.filterClassTokens(attr.Val)
			result.Stats.ClassTokensDropped += dropped
			if filtered == "" {
				// No survivors: drop the attribute rather than leave class="".
				result.Stats.AttributesRemoved++
				c.debugRemoval(tag, attr.Key, attr.Val)
				continue
			}
			attr.Val = filtered
			kept = append(kept, attr)
			continue
		}

		if c.removeAttribute(tag, key, attr.Val) {
			result.Stats.AttributesRemoved++
			c.debugRemoval(tag, attr.Key, attr.Val)
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}

// removeAttribute decides whether one attribute is an artifact. Purely local
// to the attribute name/value and the element tag, which is what makes the
// cleaner idempotent and traversal-order independent.
func (c *Cleaner) removeAttribute(tag, key, val string) bool {
	switch {
	case key == "style":
		// Aggressive by policy: vendor styles cannot be reliably told apart
		// from authored ones.
		return true
	case c.removeAttrs[key]:
		return true
	case strings.HasPrefix(key, eventHandlerPrefix) && len(key) > len(eventHandlerPrefix):
		return true
	case key == "xmlns" || strings.HasPrefix(key, "xmlns:"):
		return true
	case c.vendorNamespaced(key):
		return true
	case key == "name" && c.anchorPattern != nil && c.anchorPattern.MatchString(val):
		return true
	case key == "id" && c.vendorID(val):
		return true
	case tag == "hr" && c.hrAttrs[key]:
		return true
	}
	return false
}

// filterClassTokens drops vendor class tokens and rejoins the survivors with
// single spaces, preserving their relative order.
func (c *Cleaner) filterClassTokens(val string) (string, int) {
	tokens := strings.Fields(val)
	kept := tokens[:0]
	dropped := 0
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		vendor := false
		for _, sub := range c.classSubstrings {
			if strings.Contains(lower, sub) {
				vendor = true
				break
			}
		}
		if vendor {
			dropped++
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " "), dropped
}

// vendorNamespaced reports whether an attribute name carries a vendor XML
// namespace prefix (v:shapes, o:gfxdata).
func (c *Cleaner) vendorNamespaced(key string) bool {
	i := strings.IndexByte(key, ':')
	if i <= 0 {
		return false
	}
	return c.nsPrefixes[key[:i]]
}

// vendorID reports whether an id value is tool-generated: it matches the
// configured pattern or textually contains the vendor product name.
func (c *Cleaner) vendorID(val string) bool {
	if strings.Contains(strings.ToLower(val), vendorProductToken) {
		return true
	}
	return c.idPattern != nil && c.idPattern.MatchString(val)
}

func (c *Cleaner) debugRemoval(tag, attr, val string) {
	if c.rules.Debug {
		logger.Debug("attribute removed", "tag", tag, "attr", attr, "value", val)
	}
}

// rootNode returns the document root for node-level passes.
func rootNode(doc *goquery.Document) *html.Node {
	if len(doc.Nodes) == 0 {
		return nil
	}
	return doc.Nodes[0]
}

func lowerSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[strings.ToLower(item)] = true
	}
	return m
}
