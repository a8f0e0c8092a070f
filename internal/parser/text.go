package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// shortLineWords is the longest single line still treated as a standalone
// line (heading, page number, running header) rather than body text.
const shortLineWords = 8

// TextParser handles plain text files. Blank lines separate blocks and form
// feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*fragment.Stream, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := newPageBuilder(Stem(filename))
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		font := BodyFont
		if len(block) == 1 && len(strings.Fields(block[0])) <= shortLineWords {
			font = LineFont
		}
		b.add(block, font, BodySize, nil)
		block = nil
	}

	for scanner.Scan() {
		segments := strings.Split(scanner.Text(), "\f")
		for i, line := range segments {
			if i > 0 {
				flush()
				b.newPage()
			}
			if strings.TrimSpace(line) == "" {
				flush()
				continue
			}
			block = append(block, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.finish(), nil
}
