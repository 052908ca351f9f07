package domain

import (
	"strings"
	"unicode/utf16"
)

// ProjectRequest is a validated request to generate one project.
type ProjectRequest struct {
	ProjectName   string   `json:"projectName"`
	Architecture  string   `json:"architecture,omitempty"`
	CustomFolders []string `json:"customFolders,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// ProjectSummary is what an overview writer knows about a project.
type ProjectSummary struct {
	Name         string
	Architecture Architecture
	Folders      []string
	Description  string
}

// ArchitectureInfo describes one registered architecture for catalog listings.
type ArchitectureInfo struct {
	Name    Architecture `json:"name"`
	Folders []string     `json:"folders"`
}

// Catalog lists every registered architecture with its folders.
func Catalog() []ArchitectureInfo {
	out := make([]ArchitectureInfo, 0, len(architectureOrder))
	for _, a := range architectureOrder {
		out = append(out, ArchitectureInfo{Name: a, Folders: Folders(a)})
	}
	return out
}

// SanitizeProjectName maps a user supplied name to the on-disk project
// identifier: ASCII letters are lowercased, digits and '_' are kept, and every
// other character becomes '_' once per UTF-16 code unit, so characters outside
// the Basic Multilingual Plane ("😀") become "__".
func SanitizeProjectName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteString(strings.Repeat("_", max(utf16.RuneLen(r), 1)))
		}
	}
	return b.String()
}
