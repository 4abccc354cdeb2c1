package config

// SettingsFile represents the structure of the optional ppac.yaml settings file.
type SettingsFile struct {
	InstallRoot  string     `yaml:"install_root"`
	Ledger       string     `yaml:"ledger"`
	Repositories string     `yaml:"repositories"`
	Fetch        FetchDTO   `yaml:"fetch"`
	Catalog      CatalogDTO `yaml:"catalog"`
	S3           S3DTO      `yaml:"s3"`
	Metrics      MetricsDTO `yaml:"metrics"`
}

// FetchDTO configures downloads.
type FetchDTO struct {
	Timeout   string `yaml:"timeout"`
	Retries   *int   `yaml:"retries"`
	UserAgent string `yaml:"user_agent"`
}

// CatalogDTO configures catalog loading.
type CatalogDTO struct {
	Concurrency int `yaml:"concurrency"`
}

// S3DTO configures s3:// sources.
type S3DTO struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// MetricsDTO configures the metrics textfile.
type MetricsDTO struct {
	Textfile string `yaml:"textfile"`
}

// Keys of a repo.config section.
const (
	keyCatalogURL  = "json_url"
	keyArtifactURL = "package_url"
	keyDisplayName = "repo_name"
)
