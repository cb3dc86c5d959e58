// Package resume pulls the work history out of a resume document.
//
// Extraction is best effort: the text of the document is searched for an
// "Experience" section which is then split into entries on lines that look
// like role headers ("Title — Company (Apr 2023 – Mar 2025)"). Any failure
// along the way produces an empty result rather than an error.
package resume

import (
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entry is one role in the experience section.
type Entry struct {
	Header string   `yaml:"header" json:"header"`
	Lines  []string `yaml:"lines" json:"lines"`
}

// TextSource returns the text of every page of a document, in page order.
type TextSource interface {
	PageTexts(path string) ([]string, error)
}

// minSectionLen is how far past the section start the stop headings are
// searched from, so the "experience" heading itself never ends the section.
const minSectionLen = 10

var (
	sectionHeadings = []string{"experience", "professional experience", "work experience"}
	stopHeadings    = []string{
		"education", "skills", "projects", "certifications", "publications", "awards", "summary", "profile",
	}
)

// Extractor reads a document through a TextSource and parses its experience
// section. A nil source means text extraction is unavailable.
type Extractor struct {
	source TextSource
	logger *slog.Logger
}

// NewExtractor returns an Extractor. Both arguments may be nil.
func NewExtractor(source TextSource, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{source: source, logger: logger}
}

// Extract returns the experience entries found in the document at path. It
// never fails: a missing capability, a missing or unreadable file, a document
// without text or without an experience section all give an empty result.
func (e *Extractor) Extract(path string) []Entry {
	if e.source == nil {
		e.logger.Debug("resume: text extraction unavailable", "path", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		e.logger.Debug("resume: document not found", "path", path)
		return nil
	}

	pages, err := e.source.PageTexts(path)
	if err != nil {
		e.logger.Warn("resume: text extraction failed", "path", path, "err", err)
		return nil
	}
	text := strings.Join(pages, "\n")
	if text == "" {
		e.logger.Debug("resume: document has no text", "path", path, "pages", len(pages))
		return nil
	}

	entries := Parse(text)
	e.logger.Debug("resume: parsed experience", "path", path, "entries", len(entries))
	return entries
}

// Parse carves the experience section of text into entries.
func Parse(text string) []Entry {
	raw := normalize(text)

	section, ok := experienceSection(raw)
	if !ok {
		return nil
	}

	var lines []string
	for _, ln := range splitLines(section) {
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) > 0 && hasPrefixFold(lines[0], "experience") {
		lines = lines[1:]
	}

	var (
		entries []Entry
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		rest := make([]string, len(current)-1)
		copy(rest, current[1:])
		entries = append(entries, Entry{Header: current[0], Lines: rest})
		current = nil
	}
	for _, ln := range lines {
		if len(current) > 0 && looksLikeHeader(ln) {
			flush()
		}
		current = append(current, ln)
	}
	flush()

	cleaned := entries[:0]
	for _, en := range entries {
		if en.Header != "" && hasLetter(en.Header) {
			cleaned = append(cleaned, en)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// experienceSection returns the trimmed text between the experience heading
// and the next stop heading.
func experienceSection(raw string) (string, bool) {
	start := -1
	for _, h := range sectionHeadings {
		if start = indexFold(raw, h, 0); start != -1 {
			break
		}
	}
	if start == -1 {
		return "", false
	}

	end := len(raw)
	for _, s := range stopHeadings {
		if i := indexFold(raw, s, start+minSectionLen); i != -1 && i < end {
			end = i
		}
	}
	if end < start {
		end = start
	}
	return strings.TrimSpace(raw[start:end]), true
}

func normalize(text string) string {
	lines := splitLines(text)
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(ln)
	}
	return strings.Join(lines, "\n")
}

// splitLines splits s at every line boundary, keeping empty lines. "\r\n"
// counts as one boundary.
func splitLines(s string) []string {
	var lines []string
	for {
		i := strings.IndexFunc(s, isLineBreak)
		if i < 0 {
			return append(lines, s)
		}
		lines = append(lines, s[:i])
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\r' && strings.HasPrefix(s[i+size:], "\n") {
			size++
		}
		s = s[i+size:]
	}
}

// isLineBreak reports line boundaries, including the form feeds and
// separators PDF text extraction emits.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// looksLikeHeader matches "Title — Company", "Title - Company" and lines
// carrying a parenthesized date range.
func looksLikeHeader(ln string) bool {
	return strings.Contains(ln, " — ") ||
		strings.Contains(ln, " - ") ||
		(strings.Contains(ln, "(") && strings.Contains(ln, ")"))
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) != -1
}

// indexFold returns the byte index of the first match of the lower-case ASCII
// needle in s at or after from, comparing ASCII letters case-insensitively.
// Indexes stay valid for s because no bytes are rewritten.
func indexFold(s, needle string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(needle) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && equalFoldASCII(s[:len(prefix)], prefix)
}

func equalFoldASCII(s, lower string) bool {
	for i := 0; i < len(lower); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}
