package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tuikit/internal/model"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	maxTextWidth = 40
)

// Source lists stored records, newest first. last <= 0 means all.
type Source interface {
	ListGenerated(ctx context.Context, last int) ([]model.GeneratedRecord, error)
	ListTranslations(ctx context.Context, last int) ([]model.TranslationRecord, error)
}

// Column headers shared by the printed report and the history browser.
var (
	GeneratedHeaders   = []string{"When", "Len", "Classes", "Value"}
	TranslationHeaders = []string{"When", "Lang", "Text", "Result"}
)

// Report contains the records for history rendering.
type Report struct {
	Generated    []model.GeneratedRecord
	Translations []model.TranslationRecord
}

// BuildReport loads the records selected by cfg.
func BuildReport(ctx context.Context, st Source, cfg model.HistoryConfig) (Report, error) {
	var rep Report
	if cfg.Kind == "all" || cfg.Kind == "gen" {
		recs, err := st.ListGenerated(ctx, cfg.Last)
		if err != nil {
			return Report{}, fmt.Errorf("failed to load generated strings: %w", err)
		}
		rep.Generated = recs
	}
	if cfg.Kind == "all" || cfg.Kind == "translate" {
		recs, err := st.ListTranslations(ctx, cfg.Last)
		if err != nil {
			return Report{}, fmt.Errorf("failed to load translations: %w", err)
		}
		rep.Translations = recs
	}
	return rep, nil
}

// Render prints every non-empty section of the report.
func Render(w io.Writer, rep Report, cfg model.HistoryConfig) error {
	if cfg.Kind == "all" || cfg.Kind == "gen" {
		if err := RenderGenerated(w, rep.Generated); err != nil {
			return err
		}
	}
	if cfg.Kind == "all" || cfg.Kind == "translate" {
		if err := RenderTranslations(w, rep.Translations); err != nil {
			return err
		}
	}
	return nil
}

// RenderGenerated prints generated strings, newest first.
func RenderGenerated(w io.Writer, recs []model.GeneratedRecord) error {
	if _, err := fmt.Fprintln(w, "Generated Strings"); err != nil {
		return err
	}
	if len(recs) == 0 {
		_, err := fmt.Fprint(w, "No generated strings found.\n\n")
		return err
	}
	return writeLines(w, formatTable(GeneratedHeaders, GeneratedRows(recs), map[int]bool{1: true}))
}

// GeneratedRows formats one table row per record.
func GeneratedRows(recs []model.GeneratedRecord) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		classes := strings.Join(rec.Classes.Names(), ",")
		if classes == "" {
			classes = "lower*"
		}
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(timeLayout),
			fmt.Sprintf("%d", rec.Length),
			classes,
			rec.Value,
		})
	}
	return rows
}

// RenderTranslations prints translation attempts, newest first.
func RenderTranslations(w io.Writer, recs []model.TranslationRecord) error {
	if _, err := fmt.Fprintln(w, "Translations"); err != nil {
		return err
	}
	if len(recs) == 0 {
		_, err := fmt.Fprint(w, "No translations found.\n\n")
		return err
	}
	return writeLines(w, formatTable(TranslationHeaders, TranslationRows(recs), nil))
}

// TranslationRows formats one table row per record. Failed attempts show
// the error in place of the result.
func TranslationRows(recs []model.TranslationRecord) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		result := rec.Result
		if rec.Error != "" {
			result = "error: " + rec.Error
		}
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(timeLayout),
			strings.ToUpper(rec.Lang),
			truncate(singleLine(rec.Text), maxTextWidth),
			truncate(singleLine(result), maxTextWidth),
		})
	}
	return rows
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
