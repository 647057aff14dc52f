package models

// Category партиционирует коллекцию вопросов. Старые записи без категории
// относятся к категории по умолчанию.
type Category string

const (
	// CategoryDefault is the Striver SDE sheet, the original question list.
	CategoryDefault Category = "striver"
	// CategoryBinarySearch is the binary search pattern sheet.
	CategoryBinarySearch Category = "binary_search"
	// CategoryContest is the weekly contest tracker.
	CategoryContest Category = "contest_tracker"
)

var allowedCategories = map[Category]bool{
	CategoryDefault:      true,
	CategoryBinarySearch: true,
	CategoryContest:      true,
}

// ResolveCategory maps a requested category value onto the allow-list.
// Unrecognized or empty values collapse to the default category.
func ResolveCategory(value string) Category {
	category := Category(value)
	if allowedCategories[category] {
		return category
	}
	return CategoryDefault
}

// KnownCategory reports whether value is on the allow-list as-is.
func KnownCategory(value string) bool {
	return allowedCategories[Category(value)]
}
