package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/html"
)

// scriptLanguages maps the lang attribute of a <script> block to a lang
// registry name.
var scriptLanguages = map[string]string{
	"":           "javascript",
	"js":         "javascript",
	"jsx":        "javascript",
	"javascript": "javascript",
	"ts":         "typescript",
	"typescript": "typescript",
	"tsx":        "tsx",
}

type vueLoader struct{}

// Load cuts the <script> block out of a single-file component. A plain
// <script> is preferred over <script setup>; a file without an inline
// script yields a Script with no language.
func (vueLoader) Load(source []byte) (*Script, error) {
	blocks, err := scriptBlocks(source)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return &Script{}, nil
	}

	block := blocks[0]
	for _, b := range blocks {
		if !b.setup {
			block = b
			break
		}
	}

	language, ok := scriptLanguages[strings.ToLower(block.lang)]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("script lang %q: %w", block.lang, ErrUnsupportedLanguage))
	}
	return &Script{
		Language:   language,
		Source:     block.text,
		LineOffset: bytes.Count(source[:block.offset], []byte("\n")),
	}, nil
}

type scriptBlock struct {
	lang   string
	setup  bool
	text   []byte
	offset int
}

// scriptBlocks returns the inline <script> elements of source with the
// byte offset of their content.
func scriptBlocks(source []byte) ([]scriptBlock, error) {
	z := html.NewTokenizer(bytes.NewReader(source))

	var (
		blocks  []scriptBlock
		offset  int
		current *scriptBlock
	)
	for {
		tt := z.Next()
		raw := len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, errtrace.Wrap(err)
			}
			return blocks, nil

		case html.StartTagToken:
			tok := z.Token()
			if tok.Data == "script" {
				current = &scriptBlock{offset: offset + raw}
				for _, attr := range tok.Attr {
					switch attr.Key {
					case "lang":
						current.lang = attr.Val
					case "setup":
						current.setup = true
					case "src":
						current = nil
					}
					if current == nil {
						break
					}
				}
			}

		case html.TextToken:
			if current != nil {
				current.text = append([]byte(nil), source[offset:offset+raw]...)
			}

		case html.EndTagToken:
			if current != nil && z.Token().Data == "script" {
				blocks = append(blocks, *current)
				current = nil
			}
		}
		offset += raw
	}
}
