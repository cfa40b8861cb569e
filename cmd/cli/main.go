package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/alphafounders/site/cmd/cli/img"
	"github.com/alphafounders/site/cmd/cli/leads"
	"github.com/alphafounders/site/cmd/cli/tools"
	"github.com/alphafounders/site/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(tools.Group)
	rootCmd.AddCommand(tools.Equity, tools.Valuation, tools.Checklist, tools.Tiers)
	rootCmd.AddGroup(leads.Group)
	rootCmd.AddCommand(leads.Command)
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Command)
}

var rootCmd = &cobra.Command{
	Use:          "sitectl",
	Long:         `Command line utilities for the Alpha Founders site`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
