package domain

import "strings"

// Architecture names a folder-layout convention for a generated Flutter project.
type Architecture string

const (
	MVC               Architecture = "MVC"
	MVVM              Architecture = "MVVM"
	Provider          Architecture = "Provider"
	BLoC              Architecture = "BLoC"
	CleanArchitecture Architecture = "Clean Architecture"
	FeatureFirst      Architecture = "Feature-First"
)

// DefaultArchitecture is used when a request does not name one.
const DefaultArchitecture = MVC

// architectureOrder is the declaration order used for listings.
var architectureOrder = []Architecture{MVC, MVVM, Provider, BLoC, CleanArchitecture, FeatureFirst}

var architectureFolders = map[Architecture][]string{
	MVC:      {"lib/models", "lib/views", "lib/controllers", "lib/services", "lib/utils", "assets", "test"},
	MVVM:     {"lib/models", "lib/views", "lib/viewmodels", "lib/services", "lib/utils", "assets", "test"},
	Provider: {"lib/models", "lib/views", "lib/providers", "lib/services", "lib/utils", "lib/widgets", "assets", "test"},
	BLoC:     {"lib/models", "lib/views", "lib/bloc", "lib/repositories", "lib/services", "lib/utils", "lib/widgets", "assets", "test"},
	CleanArchitecture: {
		"lib/presentation/screens", "lib/presentation/widgets", "lib/presentation/bloc",
		"lib/domain/entities", "lib/domain/usecases", "lib/domain/repositories",
		"lib/data/models", "lib/data/repositories", "lib/data/datasources",
		"lib/core/utils", "lib/core/errors", "lib/core/network",
		"assets/images", "assets/fonts",
		"test/presentation", "test/domain", "test/data",
	},
	FeatureFirst: {
		"lib/features/authentication/data", "lib/features/authentication/domain", "lib/features/authentication/presentation",
		"lib/features/home/data", "lib/features/home/domain", "lib/features/home/presentation",
		"lib/features/profile/data", "lib/features/profile/domain", "lib/features/profile/presentation",
		"lib/core/utils", "lib/core/network", "lib/core/theme", "lib/core/widgets",
		"assets/images", "assets/fonts", "test",
	},
}

// Architectures returns every registered architecture in declaration order.
func Architectures() []Architecture {
	out := make([]Architecture, len(architectureOrder))
	copy(out, architectureOrder)
	return out
}

// IsValidArchitecture reports whether name is a registered architecture.
// Names are case-sensitive.
func IsValidArchitecture(name string) bool {
	_, ok := architectureFolders[Architecture(name)]
	return ok
}

// Folders returns a copy of the folder list registered for a.
// Unknown architectures yield an empty list.
func Folders(a Architecture) []string {
	folders := architectureFolders[a]
	out := make([]string, len(folders))
	copy(out, folders)
	return out
}

// ResolveFolders returns the architecture's folders followed by the trimmed,
// non-blank custom folders in their given order. An empty architecture falls
// back to DefaultArchitecture. The result is not deduplicated.
func ResolveFolders(a Architecture, customFolders []string) []string {
	if a == "" {
		a = DefaultArchitecture
	}

	folders := Folders(a)
	for _, folder := range customFolders {
		folder = strings.TrimSpace(folder)
		if folder == "" {
			continue
		}
		folders = append(folders, folder)
	}
	return folders
}
