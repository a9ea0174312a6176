// Package main is the entry point for the litmine CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "litmine",
	Short: "Fetch scientific article bodies and chunk them for model consumption",
	Long: `litmine walks a PMID list, scrapes each article's PubMed metadata,
fetches the PMC full-text page, extracts the article body (introduction
through discussion, boilerplate sections excluded) and splits it into
overlapping word windows. Results land in an audit CSV; progress is kept
in a local database so interrupted runs resume.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
