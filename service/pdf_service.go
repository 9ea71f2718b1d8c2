package service

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidPDF    = errors.New("invalid pdf")
	ErrEmptyDocument = errors.New("no text could be extracted from pdf")
)

// PDFService turns uploaded PDF bytes into one flat string of text.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText reads every page of the PDF in content and joins the page texts
// with newlines. Pages that fail to decode are skipped; a document that yields
// no text at all is an error.
func (s *PDFService) ExtractText(content []byte) (text string, err error) {
	if !bytes.HasPrefix(bytes.TrimLeft(content, "\x00\t\r\n "), []byte("%PDF")) {
		return "", fmt.Errorf("%w: missing %%PDF signature", ErrInvalidPDF)
	}

	// the pdf reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var sb strings.Builder
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := pageLines(page)
		if err != nil {
			log.Warn().Err(err).Int("page", pageNum).Msg("Failed to extract text from page")
			continue
		}
		pageText = s.cleanText(pageText)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}

	text = sb.String()
	if text == "" {
		return "", ErrEmptyDocument
	}
	log.Debug().Int("pages", totalPages).Int("chars", len(text)).Msg("Extracted pdf text")
	return text, nil
}

// pageLines rebuilds the lines of a page from its positioned glyphs. A new
// line starts whenever the baseline changes.
func pageLines(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	var sb strings.Builder
	var lastY float64
	for i, t := range page.Content().Text {
		if i > 0 && t.Y != lastY {
			sb.WriteString("\n")
		}
		sb.WriteString(t.S)
		lastY = t.Y
	}
	return sb.String(), nil
}

var textReplacer = strings.NewReplacer(
	"\u0000", "", // Null character
	"\ufffd", "", // Unicode replacement character
	"\u001b", "", // Escape character
	"\r", "",
	"\f", "\n",
)

func (s *PDFService) cleanText(text string) string {
	return strings.TrimSpace(textReplacer.Replace(text))
}

// GetFileNameWithoutExt extracts filename without extension from a file path
func GetFileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
