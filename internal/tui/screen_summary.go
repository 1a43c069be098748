package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/voice"
)

type summaryModel struct {
	result *voice.SaveResult
}

func newSummaryModel(result *voice.SaveResult) summaryModel {
	return summaryModel{result: result}
}

func (m summaryModel) view(status string) string {
	if m.result == nil {
		return renderPage("SUMMARY", "", "esc: back")
	}

	var b strings.Builder
	if status != "" {
		b.WriteString(statusStyle.Render("OK: " + status))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Saved \"%s\" │ %d min billed\n\n", m.result.Title, m.result.Seconds/60))
	b.WriteString(m.result.Summary.Summary)
	if items := strings.TrimSpace(m.result.Summary.ActionItems); items != "" {
		b.WriteString("\n\nAction items:\n")
		b.WriteString(items)
	}

	return renderPage("SUMMARY", b.String(), "c: copy summary │ t: copy transcript │ enter/esc: back to list")
}
