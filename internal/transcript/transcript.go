// Package transcript handles transcript intake: cleaning raw text,
// recognizing YouTube URLs, and pulling text out of PDF uploads.
package transcript

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	timestampPattern = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)
	newlinesPattern  = regexp.MustCompile(`\n{3,}`)
	videoIDPattern   = regexp.MustCompile(`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
)

// Clean strips [hh:mm:ss] timestamps and collapses runs of blank lines.
func Clean(raw string) string {
	cleaned := timestampPattern.ReplaceAllString(raw, "")
	cleaned = newlinesPattern.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Returns the empty string when the URL is not recognized.
func ExtractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractPDF extracts plain text from a PDF transcript export, page by
// page. Pages that fail to extract are skipped.
func ExtractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}
