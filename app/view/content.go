package view

import "strings"

// BlockKind classifies a rendered content block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading1
	Heading2
	Heading3
	List
)

// Block is one rendered piece of post content.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

// Tag is the HTML element a block renders as.
func (b Block) Tag() string {
	switch b.Kind {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	case Heading3:
		return "h3"
	case List:
		return "ul"
	default:
		return "p"
	}
}

var headingPrefixes = []struct {
	prefix string
	kind   BlockKind
}{
	{"### ", Heading3},
	{"## ", Heading2},
	{"# ", Heading1},
}

// RenderContent splits plain-text post content into blocks. Heading lines
// start with "# ", "## " or "### ", list items with "- ", and blank lines
// separate paragraphs. Everything else is paragraph text.
func RenderContent(content string) []Block {
	var blocks []Block
	var para []string
	var items []string

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, Block{Kind: Paragraph, Text: strings.Join(para, " ")})
			para = nil
		}
	}
	flushList := func() {
		if len(items) > 0 {
			blocks = append(blocks, Block{Kind: List, Items: items})
			items = nil
		}
	}

	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flushPara()
			flushList()
			continue
		}
		if text, ok := strings.CutPrefix(line, "- "); ok {
			flushPara()
			items = append(items, strings.TrimSpace(text))
			continue
		}
		flushList()

		heading := false
		for _, h := range headingPrefixes {
			if text, ok := strings.CutPrefix(line, h.prefix); ok {
				flushPara()
				blocks = append(blocks, Block{Kind: h.kind, Text: strings.TrimSpace(text)})
				heading = true
				break
			}
		}
		if !heading {
			para = append(para, line)
		}
	}
	flushPara()
	flushList()
	return blocks
}
