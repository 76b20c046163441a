package openings

import "strings"

// FamilyName trims a full opening name down to its family: everything
// before the first ":" or ",".
func FamilyName(fullName string) string {
	name := fullName
	if idx := strings.Index(name, ":"); idx != -1 {
		name = name[:idx]
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// VariationName returns what remains of a full opening name once the
// family prefix is removed. Both the "Family: Variation" and the
// "Family, Variation" forms are handled; a bare family name yields "".
func VariationName(fullName, family string) string {
	if fullName == family {
		return ""
	}

	result := strings.ReplaceAll(fullName, family+": ", "")
	result = strings.ReplaceAll(result, family+", ", "")
	return result
}
