// Package features holds the feature metadata helpers shared by training and serving:
// naming conventions for transformed columns, categorical feature lists, the
// explanation config sent with model uploads and serving-time filter expressions.
package features

import "strings"

const (
	TargetFeatureName = "Class"

	transformedSuffix = "_xf"
	vocabularySuffix  = "_vocab"
)

var TargetLabels = []string{"legit", "fraudulent"}

// TransformedName returns the name of the transformed feature from the original name.
func TransformedName(key string) string {
	return key + transformedSuffix
}

// OriginalName returns the name of the original feature from the transformed name.
// Only the first "_xf" is removed, wherever it appears in key.
func OriginalName(key string) string {
	return strings.Replace(key, transformedSuffix, "", 1)
}

// VocabularyName returns the name of the vocabulary feature from the original name.
func VocabularyName(key string) string {
	return key + vocabularySuffix
}
