package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

const fence = "```"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CountFences returns the number of ``` tokens in text.
func CountFences(text string) int {
	return strings.Count(text, fence)
}

// HasOpenFence reports whether text ends inside a code block.
func HasOpenFence(text string) bool {
	return CountFences(text)%2 == 1
}

// FixFences moves fence tokens onto their own lines. Tokens pair up left to
// right: odd ones open a block, even ones close it.
//
//   - an opener glued to text gets a blank line before it
//   - text after an opener's language tag moves to the next line
//   - a closer glued to text gets a line break before it
//   - text after a closer moves down, separated by a blank line
//
// Indentation before a fence is not "text", so fences nested in list items
// keep their place.
func FixFences(text string) string {
	if !strings.Contains(text, fence) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16)
	opener := true
	i := 0
	for {
		j := strings.Index(text[i:], fence)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		j += i
		b.WriteString(text[i:j])

		if gluedBefore(text, j) {
			if opener {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(fence)

		k := j + len(fence)
		if opener {
			tagEnd := k
			for tagEnd < len(text) && isTagByte(text[tagEnd]) {
				tagEnd++
			}
			b.WriteString(text[k:tagEnd])
			k = tagEnd
			if ws := skipBlanks(text, tagEnd); ws > tagEnd && startsText(text, ws) {
				b.WriteString("\n")
				k = ws
			}
		} else if ws := skipBlanks(text, k); startsText(text, ws) {
			b.WriteString("\n\n")
			k = ws
		}

		i = k
		opener = !opener
	}
	return b.String()
}

// gluedBefore reports whether the fence at j has non-blank text before it on
// the same line.
func gluedBefore(text string, j int) bool {
	if j > 0 && text[j-1] == '`' {
		return false
	}
	for k := j - 1; k >= 0; k-- {
		switch text[k] {
		case '\n':
			return false
		case ' ', '\t':
		default:
			return true
		}
	}
	return false
}

func skipBlanks(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

// startsText reports whether a non-fence character sits at i on this line.
func startsText(text string, i int) bool {
	return i < len(text) && text[i] != '\n' && text[i] != '`'
}

// isTagByte reports whether c can appear in a fence info string
// (go, c++, objective-c, c#, shell.session).
func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '+' || c == '-' || c == '#' || c == '.'
}

// CodeBlocks holds fenced blocks extracted by Protect.
type CodeBlocks struct {
	openMark, closeMark rune
	blocks              []string
}

// Protect replaces every complete ```…``` span with a placeholder made of
// private-use runes that do not occur in text. An unterminated trailing
// fence is left in place.
func Protect(text string) (string, *CodeBlocks) {
	openMark, closeMark := pickMarkers(text)
	cb := &CodeBlocks{openMark: openMark, closeMark: closeMark}
	if CountFences(text) < 2 {
		return text, cb
	}

	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for {
		start := strings.Index(text[i:], fence)
		if start < 0 {
			break
		}
		start += i
		end := strings.Index(text[start+len(fence):], fence)
		if end < 0 {
			break
		}
		end += start + 2*len(fence)

		b.WriteString(text[i:start])
		b.WriteString(cb.placeholder(len(cb.blocks)))
		cb.blocks = append(cb.blocks, text[start:end])
		i = end
	}
	b.WriteString(text[i:])
	return b.String(), cb
}

// Len returns the number of protected blocks.
func (c *CodeBlocks) Len() int {
	return len(c.blocks)
}

// Restore puts every block back in place of its placeholder.
func (c *CodeBlocks) Restore(text string) string {
	if len(c.blocks) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(c.blocks))
	for i, block := range c.blocks {
		pairs = append(pairs, c.placeholder(i), block)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (c *CodeBlocks) placeholder(i int) string {
	return string(c.openMark) + strconv.Itoa(i) + string(c.closeMark)
}

// pickMarkers returns the first pair of private-use runes absent from text.
// U+E000 and U+E001 are left for callers embedding their own markers.
func pickMarkers(text string) (rune, rune) {
	for r := rune(0xE002); r < 0xF8FF; r += 2 {
		if !strings.ContainsRune(text, r) && !strings.ContainsRune(text, r+1) {
			return r, r + 1
		}
	}
	return 0xF0000, 0xF0001
}

// maskCode blanks out complete code blocks while keeping their line count,
// so diagnostics report line numbers of the original text.
func maskCode(text string) string {
	protected, cb := Protect(text)
	if cb.Len() == 0 {
		return text
	}
	pairs := make([]string, 0, 2*cb.Len())
	for i, block := range cb.blocks {
		pairs = append(pairs, cb.placeholder(i), string(cb.openMark)+strings.Repeat("\n", strings.Count(block, "\n"))+string(cb.closeMark))
	}
	return strings.NewReplacer(pairs...).Replace(protected)
}
