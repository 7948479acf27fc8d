package cleanstyles

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/khawkins98/ckeditor-clean-styles/internal/logger"
)

// conditionalCommentPattern matches the downlevel-hidden conditional
// comments Word wraps around its <xml> payload and font declarations:
// <!--[if gte mso 9]> ... <![endif]-->.
var conditionalCommentPattern = regexp.MustCompile(`(?i)\[(?:if[\s!]|endif\])`)

// stripConditionalComments removes matching comment nodes anywhere in the
// tree. Children are snapshotted first since removal mutates the sibling
// list.
func stripConditionalComments(n *html.Node, stats *Stats) {
	var children []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}

	for _, child := range children {
		if child.Type == html.CommentNode && conditionalCommentPattern.MatchString(child.Data) {
			n.RemoveChild(child)
			stats.CommentsStripped++
			continue
		}
		stripConditionalComments(child, stats)
	}
}

// unwrapVendorElements removes elements whose tag carries a vendor namespace
// prefix (<o:p>, <v:shape>), promoting their children in place so no text is
// lost. Nested wrappers are handled by rescanning from the first promoted
// node.
func unwrapVendorElements(n *html.Node, prefixes map[string]bool, stats *Stats) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling

		if child.Type == html.ElementNode && vendorTag(child.Data, prefixes) {
			first := child.FirstChild
			for gc := child.FirstChild; gc != nil; {
				gnext := gc.NextSibling
				child.RemoveChild(gc)
				n.InsertBefore(gc, child)
				gc = gnext
			}
			n.RemoveChild(child)
			stats.ElementsUnwrapped++
			if first != nil {
				next = first
			}
		} else {
			unwrapVendorElements(child, prefixes, stats)
		}

		child = next
	}
}

// vendorTag reports whether a tag name carries one of the vendor namespace
// prefixes.
func vendorTag(tag string, prefixes map[string]bool) bool {
	i := strings.IndexByte(tag, ':')
	if i <= 0 {
		return false
	}
	return prefixes[strings.ToLower(tag[:i])]
}

// pruneEmptyBlocks removes paragraph-level blocks that cleanup left empty:
// trimmed text is empty and every element child is a <br>. Runs after entity
// normalization so placeholder spaces already read as whitespace.
func (c *Cleaner) pruneEmptyBlocks(doc *goquery.Document, result *Result) {
	if len(c.rules.PruneBlockTags) == 0 {
		return
	}

	selector := strings.Join(c.rules.PruneBlockTags, ", ")
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) != "" {
			return
		}
		if !onlyLineBreakChildren(s.Nodes[0]) {
			return
		}
		s.Remove()
		result.Stats.EmptyBlocksPruned++
		if c.rules.Debug {
			logger.Debug("empty block pruned", "tag", goquery.NodeName(s))
		}
	})
}

// onlyLineBreakChildren reports whether every element child of n is a <br>.
// Non-line-break children (a formatting span, even an empty one) keep the
// block alive.
func onlyLineBreakChildren(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && !strings.EqualFold(child.Data, "br") {
			return false
		}
	}
	return true
}
