package richtext

import (
	"strings"
	"sync"

	"github.com/existflow/daybook/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func markdown() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return parserInstance
}

func parse(markup string) (ast.Node, []byte) {
	source := []byte(markup)
	return markdown().Parser().Parse(text.NewReader(source)), source
}

// PlainText projects markdown markup to the plain text used for search and
// previews. Blocks are separated by newlines; images contribute their alt text.
func PlainText(markup string) string {
	if markup == "" {
		return ""
	}
	doc, source := parse(markup)

	var b strings.Builder
	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := node.(type) {
		case *ast.Text:
			if entering {
				b.Write(n.Segment.Value(source))
				if n.HardLineBreak() || n.SoftLineBreak() {
					b.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				b.Write(n.Value)
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				newline()
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					b.Write(seg.Value(source))
				}
				return ast.WalkSkipChildren, nil
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote, *ast.TextBlock,
			*extast.TableRow, *extast.TableHeader:
			newline()
		case *extast.TableCell:
			if !entering && n.NextSibling() != nil {
				b.WriteByte('\t')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimRight(b.String(), "\n")
}

// ImageRefs returns the destinations of images whose target is a bare
// filename, i.e. a stored attachment rather than a URL or path.
func ImageRefs(markup string) []string {
	if markup == "" {
		return nil
	}
	doc, _ := parse(markup)

	var refs []string
	seen := make(map[string]bool)
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		img, ok := node.(*ast.Image)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		dest := string(img.Destination)
		if isBareFilename(dest) && !seen[dest] {
			seen[dest] = true
			refs = append(refs, dest)
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// ReferencedFiles returns every attachment filename a note depends on:
// the images in its markup plus its attachment list.
func ReferencedFiles(note model.Note) []string {
	files := ImageRefs(note.Markup)
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f] = true
	}
	for _, a := range note.Attachments {
		if a.Filename != "" && !seen[a.Filename] {
			seen[a.Filename] = true
			files = append(files, a.Filename)
		}
	}
	return files
}

func isBareFilename(dest string) bool {
	if dest == "" || strings.Contains(dest, "://") || strings.ContainsAny(dest, "/\\:") {
		return false
	}
	return dest != "." && dest != ".."
}
