package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ReadmeInput carries everything the generated README.md is built from.
type ReadmeInput struct {
	ProjectName  string
	Architecture Architecture
	Folders      []string
	Date         time.Time
	// Overview is an optional free-text section placed above the folder tree.
	Overview string
}

type folderDescription struct {
	tokens      []string
	description string
}

// folderDescriptions is evaluated in order; a folder gets the first match only.
var folderDescriptions = []folderDescription{
	{[]string{"models"}, "Contains data models and entity classes."},
	{[]string{"views", "screens"}, "Contains UI widgets and screens."},
	{[]string{"controllers"}, "Contains controller classes for MVC pattern."},
	{[]string{"viewmodels"}, "Contains ViewModel classes for MVVM pattern."},
	{[]string{"providers"}, "Contains Provider state management classes."},
	{[]string{"bloc"}, "Contains BLoC (Business Logic Component) classes."},
	{[]string{"repositories"}, "Contains repository implementations for data access."},
	{[]string{"services"}, "Contains service classes for external APIs and functionality."},
	{[]string{"utils"}, "Contains utility and helper classes."},
	{[]string{"widgets"}, "Contains reusable widget components."},
	{[]string{"assets"}, "Contains static assets like images and fonts."},
	{[]string{"test"}, "Contains test files for unit, widget, and integration tests."},
	{[]string{"domain"}, "Contains domain layer components (Clean Architecture)."},
	{[]string{"data"}, "Contains data layer components (Clean Architecture)."},
	{[]string{"presentation"}, "Contains presentation layer components (Clean Architecture)."},
	{[]string{"features"}, "Contains feature modules (Feature-First Architecture)."},
	{[]string{"core"}, "Contains core functionality shared across the app."},
}

// DescribeFolder returns the README description for folder, or false when no
// rule applies.
func DescribeFolder(folder string) (string, bool) {
	for _, rule := range folderDescriptions {
		for _, token := range rule.tokens {
			if strings.Contains(folder, token) {
				return rule.description, true
			}
		}
	}
	return "", false
}

// SortedFolders returns a lexicographically sorted copy of folders.
func SortedFolders(folders []string) []string {
	sorted := slices.Clone(folders)
	slices.Sort(sorted)
	return sorted
}

// GenerateReadme renders the README.md placed at the project root.
func GenerateReadme(in ReadmeInput) string {
	date := in.Date.UTC().Format(time.DateOnly)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", in.ProjectName)
	fmt.Fprintf(&b, "Generated on: %s\n\n", date)
	fmt.Fprintf(&b, "## Architecture: %s\n\n", in.Architecture)
	fmt.Fprintf(&b, "This project follows the %s architectural pattern for Flutter development.\n\n", in.Architecture)

	if overview := strings.TrimSpace(in.Overview); overview != "" {
		b.WriteString("### Overview:\n")
		b.WriteString(overview)
		b.WriteString("\n\n")
	}

	sorted := SortedFolders(in.Folders)

	b.WriteString("### Folder Structure:\n```\n")
	for _, folder := range sorted {
		b.WriteString(folder)
		b.WriteString("/\n")
	}
	b.WriteString("```\n\n")

	b.WriteString("### Folder Descriptions:\n")
	for _, folder := range sorted {
		if desc, ok := DescribeFolder(folder); ok {
			fmt.Fprintf(&b, "- **%s**: %s\n", folder, desc)
		}
	}

	b.WriteString("\n## Getting Started\n\n")
	fmt.Fprintf(&b, "This project is a starting point for a Flutter application following the %s architecture pattern.\n\n", in.Architecture)
	b.WriteString("For help getting started with Flutter development, view the " +
		"[online documentation](https://docs.flutter.dev/), which offers tutorials, " +
		"samples, guidance on mobile development, and a full API reference.\n")

	return b.String()
}
