package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuikit/internal/model"
	"github.com/verte-zerg/tuikit/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuikit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i, value := range []string{"first111", "second22", "third333"} {
		rec := model.GeneratedRecord{
			CreatedAt: time.Unix(int64(i), 0),
			Value:     value,
			Length:    len(value),
			Classes:   model.DefaultClasses(),
		}
		if _, err := st.InsertGenerated(ctx, rec); err != nil {
			t.Fatalf("insert generated: %v", err)
		}
	}
	if err := st.InsertTranslation(ctx, model.TranslationRecord{
		ID: "id-1", CreatedAt: time.Unix(5, 0), Text: "good\nmorning", Lang: "es", Result: "buenos días",
	}); err != nil {
		t.Fatalf("insert translation: %v", err)
	}

	cfg := model.HistoryConfig{Kind: "all", Last: 2}
	rep, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(rep.Generated) != 2 {
		t.Fatalf("expected 2 generated records, got %d", len(rep.Generated))
	}
	if rep.Generated[0].Value != "third333" {
		t.Fatalf("expected newest first, got %q", rep.Generated[0].Value)
	}
	if len(rep.Translations) != 1 {
		t.Fatalf("expected 1 translation, got %d", len(rep.Translations))
	}

	var buf bytes.Buffer
	if err := Render(&buf, rep, cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Generated Strings", "third333", "second22", "upper,lower,numbers", "Translations", "ES", "good morning", "buenos días"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("missing %q in output:\n%s", needle, out)
		}
	}
	if strings.Contains(out, "first111") {
		t.Fatalf("expected --last to drop the oldest record:\n%s", out)
	}

	genOnly := model.HistoryConfig{Kind: "gen"}
	rep, err = BuildReport(ctx, st, genOnly)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if rep.Translations != nil {
		t.Fatalf("expected no translations for kind=gen")
	}
}

func TestRenderEmptySections(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Report{}, model.HistoryConfig{Kind: "all"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No generated strings found.") || !strings.Contains(out, "No translations found.") {
		t.Fatalf("unexpected empty output:\n%s", out)
	}
}

func TestRenderTranslationError(t *testing.T) {
	var buf bytes.Buffer
	recs := []model.TranslationRecord{{CreatedAt: time.Unix(0, 0), Lang: "de", Text: "x", Error: "HTTP error! status: 500"}}
	if err := RenderTranslations(&buf, recs); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "error: HTTP error! status: 500") {
		t.Fatalf("expected error cell:\n%s", buf.String())
	}
}
