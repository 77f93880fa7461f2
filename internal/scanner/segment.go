package scanner

import "strings"

// Segmenter splits raw file text into statement spans.
type Segmenter interface {
	Segment(text string) []Span
}

// BlankLineSegmenter is the default segmentation strategy: a line consisting
// only of whitespace ends the current span and begins the next. Semicolons
// are not a boundary. Leading and trailing blank lines are skipped and runs
// of blank lines collapse. A statement containing an internal blank line is
// split in two, each half classified independently (known limitation).
type BlankLineSegmenter struct{}

func (BlankLineSegmenter) Segment(text string) []Span {
	var spans []Span
	var buf []string
	start, end := 0, 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		spans = append(spans, Span{
			Text:      strings.Join(buf, "\n"),
			StartLine: start,
			EndLine:   end,
		})
		buf = nil
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if len(buf) == 0 {
			start = i + 1
		}
		buf = append(buf, line)
		end = i + 1
	}
	flush()

	return spans
}

// Collapse folds runs of whitespace into single spaces, yielding a one-line
// rendition of a span for delimited output and fingerprinting.
func Collapse(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !prevSpace {
				sb.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		sb.WriteRune(r)
		prevSpace = false
	}
	return strings.TrimSpace(sb.String())
}
