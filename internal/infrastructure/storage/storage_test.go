package storage

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func TestCheckDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		file    string
		max     int64
		wantExt string
		wantErr error
	}{
		{name: "pdf", data: pdfBytes, file: "cv.pdf", wantExt: ".pdf"},
		{name: "plain text keeps known ext", data: []byte("dummy content"), file: "resume.pdf", wantExt: ".pdf"},
		{name: "plain text unknown ext", data: []byte("dummy content"), file: "resume.exe", wantExt: ".txt"},
		{name: "empty", data: nil, file: "a.pdf", wantErr: ErrEmptyFile},
		{name: "too large", data: pdfBytes, file: "a.pdf", max: 4, wantErr: ErrFileTooLarge},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), file: "a.png", wantErr: ErrUnsupportedType},
		{name: "rtf", data: []byte("{\\rtf1\\ansi Resume}"), file: "cv", wantExt: ".rtf"},
		{name: "html", data: []byte("<html><body><script>alert(1)</script></body></html>"), file: "cv.html", wantErr: ErrUnsupportedType},
		{name: "html named pdf", data: []byte("<!DOCTYPE html><html><body>hi</body></html>"), file: "cv.pdf", wantErr: ErrUnsupportedType},
		{name: "svg", data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"></svg>`), file: "cv.svg", wantErr: ErrUnsupportedType},
		{name: "xml", data: []byte(`<?xml version="1.0"?><resume></resume>`), file: "cv.txt", wantErr: ErrUnsupportedType},
		{name: "json", data: []byte(`{"name":"alice"}`), file: "cv.txt", wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := CheckDocument(tt.data, tt.file, tt.max)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if ext != tt.wantExt {
				t.Fatalf("expected ext %q, got %q", tt.wantExt, ext)
			}
		})
	}
}

func TestLocal_StoreAndDelete(t *testing.T) {
	l, err := NewLocal(t.TempDir(), 1<<20, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx := context.Background()

	ref, err := l.Store(ctx, pdfBytes, ApplicationPrefix, "resume.pdf")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(ref, "applications/") || !strings.HasSuffix(ref, ".pdf") {
		t.Fatalf("unexpected ref %q", ref)
	}

	p, err := l.Path(ref)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != string(pdfBytes) {
		t.Fatalf("expected stored content, err=%v", err)
	}

	if err := l.Delete(ctx, ref); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := l.Delete(ctx, ref); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestLocal_RejectsEscapingRefs(t *testing.T) {
	l, err := NewLocal(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, ref := range []string{"", "../etc/passwd", "/abs/file", "resumes/../../x"} {
		if err := l.Delete(context.Background(), ref); !errors.Is(err, ErrInvalidRef) {
			t.Fatalf("expected ErrInvalidRef for %q, got %v", ref, err)
		}
	}
}
