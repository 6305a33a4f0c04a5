package config

// FileConfig holds defaults read from the YAML config file. Command line
// flags always take precedence over these values.
type FileConfig struct {
	Profile    string `yaml:"profile"`
	Region     string `yaml:"region"`
	PageSize   int    `yaml:"page_size"`
	MaxItems   int    `yaml:"max_items"`
	OutputFile string `yaml:"output_file"`
	Store      bool   `yaml:"store"`
	DBPath     string `yaml:"db_path"`
	Verbose    bool   `yaml:"verbose"`
}

type service struct {
	defaultPath string
}

// Service is the interface for config file loading.
type Service interface {
	Load(path string) (*FileConfig, error)
}
