package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF writes a minimal PDF with one page per argument. Newlines in a
// page become separate Helvetica text lines, 20 points apart.
func buildPDF(pages ...string) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1: catalog, 2: page tree, 3: font, then a page and content pair per page
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, text := range pages {
		object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", strings.Join(strings.Split(text, "\n"), ") Tj 0 -20 Td ("))
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestPDFService_ExtractText(t *testing.T) {
	svc := NewPDFService()

	text, err := svc.ExtractText(buildPDF("1. What is the main topic?", "2. Who is the author?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"What is the main topic?", "Who is the author?"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected extracted text to contain %q, got %q", want, text)
		}
	}
	if strings.Index(text, "main topic") > strings.Index(text, "author") {
		t.Errorf("expected pages in document order, got %q", text)
	}
}

func TestPDFService_KeepsLinesWithinPage(t *testing.T) {
	svc := NewPDFService()

	text, err := svc.ExtractText(buildPDF("1. What is the main topic?\n2. Who is the author?", "3. When was it written?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1. What is the main topic?\n2. Who is the author?\n3. When was it written?"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}

	set := ExtractQuestions(text)
	if len(set.Questions) != 3 || set.Segmentation.Fallback {
		t.Fatalf("expected 3 questions, got %q", set.Questions)
	}
}

func TestPDFService_InvalidInput(t *testing.T) {
	svc := NewPDFService()

	testCases := []struct {
		name    string
		content []byte
		want    error
	}{
		{"not a pdf", []byte("hello world"), ErrInvalidPDF},
		{"empty", nil, ErrInvalidPDF},
		{"truncated", buildPDF("some text")[:60], ErrInvalidPDF},
		{"blank pages", buildPDF(""), ErrEmptyDocument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ExtractText(tc.content); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGetFileNameWithoutExt(t *testing.T) {
	if got := GetFileNameWithoutExt("/tmp/reports/q3.summary.pdf"); got != "q3.summary" {
		t.Fatalf("unexpected name %q", got)
	}
}
