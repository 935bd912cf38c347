package api

import "fmt"

type Configuration struct {
	ProjectId string
	Region    string
	UserAgent string
	endpoint  string
}

func NewConfiguration(projectId, region string) *Configuration {
	cfg := &Configuration{
		UserAgent: "Vertex-FeatureStore/1.0.0/go",
		ProjectId: projectId,
		Region:    region,
	}
	return cfg
}

func (c *Configuration) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// GetEndpoint returns the regional service endpoint, "{region}-aiplatform.googleapis.com"
// unless a custom endpoint was set.
func (c *Configuration) GetEndpoint() string {
	if c.endpoint == "" {
		c.endpoint = fmt.Sprintf("%s-aiplatform.googleapis.com", c.Region)
	}

	return c.endpoint
}

func (c *Configuration) dialAddress() string {
	return c.GetEndpoint() + ":443"
}

func (c *Configuration) Validate() error {
	if c.ProjectId == "" {
		return fmt.Errorf("project id is empty")
	}
	if c.Region == "" {
		return fmt.Errorf("region is empty")
	}
	return nil
}
