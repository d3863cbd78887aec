// Package render formats board reports for humans (markdown) and for
// machines (JSON).
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okazmin/kompas/internal/board"
	"github.com/okazmin/kompas/internal/model"
)

// Options controls report rendering
type Options struct {
	Verbose       bool // Include the per-card detail section
	IncludeFooter bool
	SnapshotID    string // Optional, shown in the header when set
}

// JSON renders the report as indented JSON
func JSON(report *board.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// Markdown renders the report as a decision memo: header, summary table,
// and optionally a detail section per card.
func Markdown(report *board.Report, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Decision Memo: %s\n\n", report.CustomerName)
	if opts.SnapshotID != "" {
		fmt.Fprintf(&b, "**Snapshot ID:** %s  \n", opts.SnapshotID)
	}
	fmt.Fprintf(&b, "**Date:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Method:** %s  \n", report.Method)
	fmt.Fprintf(&b, "**Data Quality Penalty:** %.2f\n\n", report.QualityPenalty)

	writeQualityChecks(&b, report.QualityChecks)

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("Based on the evidence collected, the following decisions are recommended for review.\n\n")
	b.WriteString("| # | ID | Decision Topic | Status | Priority | Recommendation |\n")
	b.WriteString("|---|----|----------------|--------|----------|----------------|\n")
	for i, entry := range report.Entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %.3f | %s |\n",
			i+1, entry.Card.ID, entry.Card.Title, entry.State.Status,
			entry.Score, summaryRecommendation(entry))
	}
	b.WriteString("\n")

	if opts.Verbose {
		b.WriteString("## Detailed Analysis\n\n")
		for _, entry := range report.Entries {
			writeDetail(&b, entry)
		}
	}

	if opts.IncludeFooter {
		fmt.Fprintf(&b, "---\n*Generated by kompas on %s*\n",
			report.GeneratedAt.Format("2006-01-02"))
	}
	return b.String()
}

func summaryRecommendation(entry board.Entry) string {
	text := "N/A"
	if entry.State.Recommendation != nil {
		text = entry.State.Recommendation.Action
	}
	if entry.Card.HumanDecisionStatus != "" {
		text = fmt.Sprintf("[%s] %s", entry.Card.HumanDecisionStatus, text)
	}
	return text
}

func writeQualityChecks(b *strings.Builder, checks []model.QualityCheckResult) {
	var flagged []model.QualityCheckResult
	for _, c := range checks {
		if !c.Passed {
			flagged = append(flagged, c)
		}
	}
	if len(flagged) == 0 {
		return
	}
	b.WriteString("## Data Quality Warnings\n\n")
	for _, c := range flagged {
		fmt.Fprintf(b, "- **%s** (%s): %s\n", c.Name, c.Severity, c.Message)
	}
	b.WriteString("\n")
}

func writeDetail(b *strings.Builder, entry board.Entry) {
	fmt.Fprintf(b, "### %s: %s\n\n", entry.Card.ID, entry.Card.Title)
	if entry.Card.DecisionQuestion != "" {
		fmt.Fprintf(b, "**Decision Question:** %s\n\n", entry.Card.DecisionQuestion)
	}
	fmt.Fprintf(b, "**Status:** %s (Priority Score: %.3f, Confidence Penalty: %.2f)\n\n",
		entry.State.Status, entry.Score, entry.State.ConfidencePenalty)

	b.WriteString("**Key Evidence**\n\n")
	if len(entry.State.KeyEvidence) > 0 {
		for _, ev := range entry.State.KeyEvidence {
			fmt.Fprintf(b, "- %s\n", ev)
		}
	} else {
		b.WriteString("- No critical triggers found.\n")
	}
	b.WriteString("\n")

	if rec := entry.State.Recommendation; rec != nil {
		b.WriteString("**Recommendation Draft**\n\n")
		fmt.Fprintf(b, "| Action | %s |\n|---|---|\n", rec.Action)
		if rec.Risks != "" {
			fmt.Fprintf(b, "| Risks | %s |\n", rec.Risks)
		}
		if rec.SuccessMetrics != "" {
			fmt.Fprintf(b, "| Success Metrics | %s |\n", rec.SuccessMetrics)
		}
		if rec.Preconditions != "" {
			fmt.Fprintf(b, "| Preconditions | %s |\n", rec.Preconditions)
		}
		b.WriteString("\n")
	}

	writeExplain(b, entry.Explain)

	if entry.Card.HumanOverrideReason != "" {
		fmt.Fprintf(b, "**Override Reason:** %s\n\n", entry.Card.HumanOverrideReason)
	}
}

// writeExplain prints the method-specific score breakdown
func writeExplain(b *strings.Builder, explain model.Explain) {
	switch {
	case explain.SAW != nil:
		fmt.Fprintf(b, "Score breakdown: impact %.3f + urgency %.3f - uncertainty %.3f\n\n",
			explain.SAW.ImpactTerm, explain.SAW.UrgencyTerm, -explain.SAW.UncertaintyTerm)
	case explain.WASPAS != nil:
		fmt.Fprintf(b, "Score breakdown: %.2f x WSM %.3f + %.2f x WPM %.3f\n\n",
			explain.WASPAS.Lambda, explain.WASPAS.SAWScore,
			1-explain.WASPAS.Lambda, explain.WASPAS.WPMScore)
	case explain.TOPSIS != nil:
		fmt.Fprintf(b, "Score breakdown: distance to ideal %.4f, to anti-ideal %.4f\n\n",
			explain.TOPSIS.DistIdeal, explain.TOPSIS.DistAntiIdeal)
	case explain.Composite != nil:
		fmt.Fprintf(b, "Score breakdown: ranks SAW %d / WASPAS %d / TOPSIS %d, average %.2f\n\n",
			explain.Composite.SAWRank, explain.Composite.WASPASRank,
			explain.Composite.TOPSISRank, explain.Composite.AverageRank)
	}
}
