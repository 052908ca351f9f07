package domain

import "strings"

// TemplateKeyword binds a folder-name token to the boilerplate file dropped
// into any folder whose path contains it.
type TemplateKeyword struct {
	Token    string
	Filename string
}

// templateKeywords is scanned in order and the first contained token wins.
// Several tokens overlap ("models" is inside "viewmodels", "data" inside
// "datasources"), so the order below decides those folders.
var templateKeywords = []TemplateKeyword{
	{"models", "user_model.dart"},
	{"views", "home_view.dart"},
	{"controllers", "app_controller.dart"},
	{"viewmodels", "main_viewmodel.dart"},
	{"providers", "auth_provider.dart"},
	{"bloc", "app_bloc.dart"},
	{"repositories", "data_repository.dart"},
	{"services", "api_service.dart"},
	{"utils", "helpers.dart"},
	{"widgets", "custom_widget.dart"},
	{"screens", "main_screen.dart"},
	{"entities", "user_entity.dart"},
	{"usecases", "get_user_usecase.dart"},
	{"datasources", "user_remote_datasource.dart"},
	{"errors", "failure.dart"},
	{"network", "api_client.dart"},
	{"domain", "domain_model.dart"},
	{"data", "data_model.dart"},
	{"presentation", "ui_component.dart"},
}

// TemplateKeywords returns a copy of the keyword table in match order.
func TemplateKeywords() []TemplateKeyword {
	out := make([]TemplateKeyword, len(templateKeywords))
	copy(out, templateKeywords)
	return out
}

// MatchTemplate returns the boilerplate filename for folder, if any keyword
// matches. Matching is case-insensitive substring containment.
func MatchTemplate(folder string) (string, bool) {
	lower := strings.ToLower(folder)
	for _, kw := range templateKeywords {
		if strings.Contains(lower, kw.Token) {
			return kw.Filename, true
		}
	}
	return "", false
}
