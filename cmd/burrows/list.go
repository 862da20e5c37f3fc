package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available worlds",
	Long:  `Shows every world found in the worlds directory, or the built-in demo.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cat := mustCatalog(newLogger())
	worlds := cat.registry.List()

	if len(worlds) == 0 {
		fmt.Println("No worlds available.")
		return
	}

	fmt.Println("Available worlds:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, w := range worlds {
		maxIDLen = max(maxIDLen, len(w.ID))
		maxTitleLen = max(maxTitleLen, len(w.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Contents")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------")

	for _, w := range worlds {
		summary := w.Summary
		if !w.Enabled {
			summary += " (disabled)"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, w.ID, maxTitleLen, w.Title, summary)
	}

	fmt.Println()
	fmt.Println("Run 'burrows play <id>' to play a world.")
}
