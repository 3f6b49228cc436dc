// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixturePDF builds a minimal parseable PDF with one Helvetica text page
// per entry in pageTexts. Texts must be plain ASCII without parentheses.
func fixturePDF(pageTexts []string) []byte {
	var kids []string
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pageTexts)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, text := range pageTexts {
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xrefOffset)
	return b.Bytes()
}

func TestLoadAllPDF(t *testing.T) {
	cfg := corpusDirs(t)
	path := filepath.Join(cfg.PDFDir, "osd-557.pdf")
	pages := []string{
		"Microgravity alters root growth in Arabidopsis",
		"Bone density declined over the mission",
	}
	if err := os.WriteFile(path, fixturePDF(pages), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	report, err := LoadAll(context.Background(), cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if report.Loaded != 1 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 1 loaded, 0 skipped", report)
	}
	if len(report.Units) != 1 {
		t.Fatalf("got %d units, want 1 (one unit per file)", len(report.Units))
	}

	unit := report.Units[0]
	first := strings.Index(unit.Text, "alters root growth")
	second := strings.Index(unit.Text, "Bone density declined")
	if first < 0 || second < 0 {
		t.Fatalf("extracted text missing page content: %q", unit.Text)
	}
	if second < first {
		t.Errorf("pages concatenated out of order: %q", unit.Text)
	}

	if got := unit.Meta["title"]; got != "osd-557" {
		t.Errorf("title = %v, want filename stem", got)
	}
	if got := unit.Meta["link"]; got != "osd-557.pdf" {
		t.Errorf("link = %v, want filename", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := unit.Meta["pub_date"]; got != info.ModTime().Unix() {
		t.Errorf("pub_date = %v, want file mtime %d", got, info.ModTime().Unix())
	}
}

func TestCollectPages(t *testing.T) {
	pages := map[int]struct {
		text string
		err  error
	}{
		1: {text: "habitat telemetry summary"},
		2: {err: errors.New("unsupported font")},
		3: {text: "  \n"},
		4: {text: "radiation exposure appendix"},
	}

	got := collectPages(4, func(i int) (string, error) {
		p := pages[i]
		return p.text, p.err
	})
	want := "habitat telemetry summary\nradiation exposure appendix"
	if got != want {
		t.Errorf("collectPages = %q, want %q", got, want)
	}

	if got := collectPages(0, func(int) (string, error) { return "unreachable", nil }); got != "" {
		t.Errorf("collectPages with no pages = %q, want empty", got)
	}
}
