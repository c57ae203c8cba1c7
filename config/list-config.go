package config

type ListConfig struct {
	Verify bool `yaml:"verify"`
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		Verify: false,
	}
}
