package main

import (
	"fmt"
	"io"

	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	colorCyan  = lipgloss.Color("14")
	colorGreen = lipgloss.Color("10")
	colorRed   = lipgloss.Color("204")

	styleNoun    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func newArchitecturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "architectures",
		Short: "List supported architectures and their folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCatalog(cmd.OutOrStdout(), domain.Catalog())
			return nil
		},
	}
}

func printCatalog(w io.Writer, catalog []domain.ArchitectureInfo) {
	for i, info := range catalog {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styleNoun.Render(string(info.Name)))
		for _, folder := range info.Folders {
			line := "  " + folder + "/"
			if desc, ok := domain.DescribeFolder(folder); ok {
				line += styleDim.Render(" - " + desc)
			}
			fmt.Fprintln(w, line)
		}
	}
}
