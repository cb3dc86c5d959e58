package resume

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

var _ TextSource = PDFSource{}

// PDFSource extracts page text from PDF files.
type PDFSource struct{}

// PageTexts returns the plain text of each page. Pages without content give
// an empty string so page positions are kept.
func (PDFSource) PageTexts(path string) (pages []string, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
