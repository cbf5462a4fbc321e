package review

import (
	"fmt"
	"html"
	"strings"

	"menuscan/internal/extraction"
)

// Display caps for the validation report. Overflow is summarized as a
// "+N more" indicator rather than rendered.
const (
	MaxEntities   = 30
	MaxKeyPhrases = 20
)

// RenderConfidenceHTML renders the confidence-annotated view: one span per
// word, classed by tier, numeric score as tooltip, line indents preserved.
// Without structured word data it falls back to the flat text.
func RenderConfidenceHTML(ext *extraction.Extraction) string {
	if !ext.HasWordData() {
		if ext.Text == "" {
			return "(No text detected)"
		}
		return html.EscapeString(ext.Text)
	}

	var b strings.Builder
	for i, line := range ext.Lines {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(strings.Repeat("&nbsp;", line.Indent))
		for j, w := range line.Words {
			if j > 0 {
				b.WriteString(" ")
			}
			tier := extraction.TierOf(w.Confidence)
			fmt.Fprintf(&b, `<span class="conf-word %s" title="%g%%">%s</span>`,
				tier.CSSClass(), w.Confidence, html.EscapeString(w.Text))
		}
	}
	return b.String()
}

// RenderConfidenceText is the terminal rendering: indented lines with a
// tier marker per word, low-confidence words flagged inline.
func RenderConfidenceText(ext *extraction.Extraction) string {
	if !ext.HasWordData() {
		if ext.Text == "" {
			return "(No text detected)"
		}
		return ext.Text
	}

	var b strings.Builder
	for i, line := range ext.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", line.Indent))
		for j, w := range line.Words {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(w.Text)
			if extraction.TierOf(w.Confidence) == extraction.TierLow {
				fmt.Fprintf(&b, "(?%g%%)", w.Confidence)
			}
		}
	}
	return b.String()
}

// RenderReportHTML renders the validation report as escaped, tooltip
// bearing tags, section by section. An empty report renders a single
// "no issues" line.
func RenderReportHTML(report *Report) string {
	if report == nil || report.Empty() {
		return `<p class="validate-empty">No issues detected.</p>`
	}

	var b strings.Builder

	if q := report.Quality; q != nil {
		fmt.Fprintf(&b,
			`<div class="validate-section"><h3>Overall Quality</h3><span class="quality-badge quality-%s">%s</span>`+
				`<span class="quality-counts">Language confidence: %g%% &bull; %d entities &bull; %d key phrases &bull; %d suspicious tokens</span></div>`,
			html.EscapeString(q.Rating), html.EscapeString(q.Rating),
			q.LanguageConfidence, q.EntityCount, q.KeyPhraseCount, q.SuspiciousTokens)
	}

	if len(report.Languages) > 0 {
		b.WriteString(`<div class="validate-section"><h3>Detected Languages</h3>`)
		for _, l := range report.Languages {
			fmt.Fprintf(&b, `<span class="entity-tag">%s (%g%%)</span>`, html.EscapeString(l.Code), l.Score)
		}
		b.WriteString(`</div>`)
	}

	if report.Sentiment != nil {
		fmt.Fprintf(&b, `<div class="validate-section"><h3>Sentiment</h3><span class="entity-tag">%s</span></div>`,
			html.EscapeString(report.Sentiment.Label))
	}

	if len(report.Entities) > 0 {
		b.WriteString(`<div class="validate-section"><h3>Entities Detected</h3>`)
		shown := report.Entities
		if len(shown) > MaxEntities {
			shown = shown[:MaxEntities]
		}
		for _, e := range shown {
			fmt.Fprintf(&b, `<span class="entity-tag" title="%s: %g%%">%s <small>(%s)</small></span>`,
				html.EscapeString(e.Type), e.Score, html.EscapeString(e.Text), html.EscapeString(e.Type))
		}
		if n := len(report.Entities) - MaxEntities; n > 0 {
			fmt.Fprintf(&b, `<span class="tag-overflow"> +%d more</span>`, n)
		}
		b.WriteString(`</div>`)
	}

	if len(report.KeyPhrases) > 0 {
		b.WriteString(`<div class="validate-section"><h3>Key Phrases</h3>`)
		shown := report.KeyPhrases
		if len(shown) > MaxKeyPhrases {
			shown = shown[:MaxKeyPhrases]
		}
		for _, kp := range shown {
			fmt.Fprintf(&b, `<span class="phrase-tag" title="%g%%">%s</span>`, kp.Score, html.EscapeString(kp.Text))
		}
		if n := len(report.KeyPhrases) - MaxKeyPhrases; n > 0 {
			fmt.Fprintf(&b, `<span class="tag-overflow"> +%d more</span>`, n)
		}
		b.WriteString(`</div>`)
	}

	if len(report.LowConfidenceSyntax) > 0 {
		b.WriteString(`<div class="validate-section"><h3>Suspicious Tokens (low syntax confidence)</h3>`)
		for _, tok := range report.LowConfidenceSyntax {
			fmt.Fprintf(&b, `<span class="suspicious-tag" title="%s: %g%%">%s</span>`,
				html.EscapeString(tok.Tag), tok.Score, html.EscapeString(tok.Text))
		}
		b.WriteString(`</div>`)
	}

	return b.String()
}

// RenderReportText is the terminal rendering of the same report.
func RenderReportText(report *Report) string {
	if report == nil || report.Empty() {
		return "No issues detected."
	}

	var b strings.Builder

	if q := report.Quality; q != nil {
		fmt.Fprintf(&b, "Overall quality: %s (language confidence %g%%, %d entities, %d key phrases, %d suspicious tokens)\n",
			q.Rating, q.LanguageConfidence, q.EntityCount, q.KeyPhraseCount, q.SuspiciousTokens)
	}
	if len(report.Languages) > 0 {
		b.WriteString("Languages:")
		for _, l := range report.Languages {
			fmt.Fprintf(&b, " %s (%g%%)", l.Code, l.Score)
		}
		b.WriteString("\n")
	}
	if report.Sentiment != nil {
		fmt.Fprintf(&b, "Sentiment: %s\n", report.Sentiment.Label)
	}
	if len(report.Entities) > 0 {
		shown := report.Entities
		if len(shown) > MaxEntities {
			shown = shown[:MaxEntities]
		}
		b.WriteString("Entities:")
		for _, e := range shown {
			fmt.Fprintf(&b, " %s(%s)", e.Text, e.Type)
		}
		if n := len(report.Entities) - MaxEntities; n > 0 {
			fmt.Fprintf(&b, " +%d more", n)
		}
		b.WriteString("\n")
	}
	if len(report.KeyPhrases) > 0 {
		shown := report.KeyPhrases
		if len(shown) > MaxKeyPhrases {
			shown = shown[:MaxKeyPhrases]
		}
		b.WriteString("Key phrases:")
		for _, kp := range shown {
			fmt.Fprintf(&b, " %q", kp.Text)
		}
		if n := len(report.KeyPhrases) - MaxKeyPhrases; n > 0 {
			fmt.Fprintf(&b, " +%d more", n)
		}
		b.WriteString("\n")
	}
	if len(report.LowConfidenceSyntax) > 0 {
		b.WriteString("Suspicious tokens:")
		for _, tok := range report.LowConfidenceSyntax {
			fmt.Fprintf(&b, " %s[%s %g%%]", tok.Text, tok.Tag, tok.Score)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
