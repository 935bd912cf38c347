package api

import (
	"fmt"
	"strings"
)

func LocationPath(project, region string) string {
	return fmt.Sprintf("projects/%s/locations/%s", project, region)
}

func FeaturestorePath(project, region, featurestore string) string {
	return fmt.Sprintf("%s/featurestores/%s", LocationPath(project, region), featurestore)
}

func EntityTypePath(project, region, featurestore, entityType string) string {
	return fmt.Sprintf("%s/entityTypes/%s", FeaturestorePath(project, region, featurestore), entityType)
}

// ResourceId returns the trailing segment of a resource name.
func ResourceId(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
