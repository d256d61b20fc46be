package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

func printResultCards(cmd *cobra.Command, cards []render.ResultCard) {
	if len(cards) == 0 {
		cmd.Println("No results.")
		return
	}

	for i, card := range cards {
		if i > 0 {
			cmd.Println()
		}
		mark := "✓"
		if !card.Succeeded {
			mark = "✗"
		}
		cmd.Printf("%s %s - %s\n", mark, card.Filename, card.Headline)

		if !card.Succeeded {
			cmd.Printf("  Error: %s\n", card.Error)
			continue
		}

		cmd.Printf("  Document ID: %s\n", render.DocumentID(card.DocumentID))
		cmd.Printf("  Type: %s\n", card.DocumentType)
		printList(cmd, "  ", "Skills", card.Skills)
		printFields(cmd, "  ", card.Metadata)
		if card.OCRPreview != "" {
			cmd.Printf("  OCR preview: %s\n", card.OCRPreview)
		}
		printJobCards(cmd, "  ", card.Jobs)
	}
}

func printFields(cmd *cobra.Command, indent string, fields []render.Field) {
	if len(fields) == 0 {
		return
	}
	cmd.Printf("%sExtracted information:\n", indent)
	for _, f := range fields {
		cmd.Printf("%s  %s: %s\n", indent, f.Label, f.Value)
	}
}

func printJobCards(cmd *cobra.Command, indent string, jobs []render.JobCard) {
	if len(jobs) == 0 {
		return
	}
	cmd.Printf("%sJob recommendations:\n", indent)
	for _, j := range jobs {
		if j.MatchBadge != "" {
			cmd.Printf("%s  %s at %s (%s)\n", indent, j.Title, j.Company, j.MatchBadge)
		} else {
			cmd.Printf("%s  %s at %s\n", indent, j.Title, j.Company)
		}
		if j.Location != "" {
			cmd.Printf("%s    Location: %s\n", indent, j.Location)
		}
		if j.Salary != "" {
			cmd.Printf("%s    Salary: %s\n", indent, j.Salary)
		}
		printList(cmd, indent+"    ", "Skills", j.Skills)
	}
}

func printRecordDetail(cmd *cobra.Command, d render.RecordDetail) {
	cmd.Printf("Document: %s\n\n", d.ID)
	cmd.Printf("  Username:  %s\n", d.Username)
	cmd.Printf("  Filename:  %s\n", d.Filename)
	cmd.Printf("  Type:      %s\n", d.DocumentType)
	cmd.Printf("  Processed: %s\n", d.ProcessedAt)
	printList(cmd, "  ", "Skills", d.Skills)
	printFields(cmd, "  ", d.Metadata)
	printJobCards(cmd, "  ", d.Jobs)
	if d.OCRText != "" {
		cmd.Println("\n  OCR text:")
		cmd.Println(d.OCRText)
	}
}

func printHealth(cmd *cobra.Command, h render.HealthPanel) {
	cmd.Printf("Status: %s\n", h.Status)
	for _, s := range h.Services {
		cmd.Printf("  %-12s %s\n", s.Label, s.State)
	}
	cmd.Printf("Last updated: %s\n", h.LastUpdated)
}

func printStats(cmd *cobra.Command, s render.StatsPanel) {
	cmd.Printf("Total documents: %d\n", s.TotalDocuments)
	cmd.Printf("Unique users:    %d\n", s.UniqueUsers)
	cmd.Printf("Last 24 hours:   %d\n", s.Recent24h)
	printCounts(cmd, "By document type", s.ByDocumentType)
	printCounts(cmd, "By user", s.ByUser)
}

func printCounts(cmd *cobra.Command, label string, counts []render.Count) {
	if len(counts) == 0 {
		return
	}
	cmd.Printf("%s:\n", label)
	for _, c := range counts {
		cmd.Printf("  %-20s %d\n", c.Name, c.Count)
	}
}

func printDocumentRows(cmd *cobra.Command, rows []render.DocumentRow) {
	if len(rows) == 0 {
		cmd.Println("No documents found.")
		return
	}
	for _, r := range rows {
		cmd.Printf("  %-6s %-16s %-30s %-14s %s\n", r.Label, r.Username, r.Filename, r.DocumentType, r.Timestamp)
	}
	cmd.Printf("\nTotal: %d documents\n", len(rows))
}
