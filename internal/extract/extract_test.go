package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestText_DocxParagraphs(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>Venue rental agreement</t></r></p>
    <p><r><t>Total fee: $4,500</t></r></p>
  </body>
</document>`
	data := buildDocx(t, docXML)

	text, err := Text(context.Background(), data, "contract.docx")
	if err != nil {
		t.Fatalf("expected docx to extract, got error: %v", err)
	}
	if !strings.Contains(text, "Venue rental agreement") {
		t.Fatalf("missing first paragraph in %q", text)
	}
	if !strings.Contains(text, "Total fee: $4,500") {
		t.Fatalf("missing second paragraph in %q", text)
	}
}

func TestText_DocxExtensionCaseInsensitive(t *testing.T) {
	data := buildDocx(t, `<document><p><t>hello</t></p></document>`)
	text, err := Text(context.Background(), data, "Contract.DOCX")
	if err != nil {
		t.Fatalf("expected uppercase extension to extract, got error: %v", err)
	}
	if !strings.Contains(text, "hello") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestText_SkippedFormats(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{name: "legacy doc", fileName: "old-contract.doc"},
		{name: "plain text", fileName: "notes.txt"},
		{name: "no extension", fileName: "contract"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(context.Background(), []byte("anything"), tt.fileName)
			if !errors.Is(err, ErrSkippedFormat) {
				t.Fatalf("expected ErrSkippedFormat for %s, got %v", tt.fileName, err)
			}
		})
	}
}

func TestText_GarbagePDFIsError(t *testing.T) {
	_, err := Text(context.Background(), []byte("not a pdf at all"), "contract.pdf")
	if err == nil {
		t.Fatal("expected parse error for garbage pdf")
	}
	if errors.Is(err, ErrSkippedFormat) {
		t.Fatalf("parse failure must not look like a skip: %v", err)
	}
}

func TestText_GarbageDocxIsError(t *testing.T) {
	_, err := Text(context.Background(), []byte("not a zip"), "contract.docx")
	if err == nil {
		t.Fatal("expected error for non-zip docx")
	}
}

func TestText_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<styles/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Text(context.Background(), buf.Bytes(), "contract.docx")
	if err == nil || !strings.Contains(err.Error(), "document.xml") {
		t.Fatalf("expected missing document.xml error, got %v", err)
	}
}

func TestText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Text(ctx, buildDocx(t, "<document/>"), "contract.docx")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
