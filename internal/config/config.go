package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors are the CSS selectors used to walk a board's listing page.
// They live in config so the engine never carries per-site markup knowledge.
type Selectors struct {
	Item     string `yaml:"item"`     // one posting row
	Title    string `yaml:"title"`    // within item
	Company  string `yaml:"company"`  // within item
	Deadline string `yaml:"deadline"` // within item
	Link     string `yaml:"link"`     // anchor within item; href becomes the posting link
}

type Board struct {
	Name      string    `yaml:"name"`
	URL       string    `yaml:"url"`
	Keyword   string    `yaml:"keyword"` // search term that surfaced the postings
	Enabled   bool      `yaml:"enabled"`
	Selectors Selectors `yaml:"selectors"`
}

type Config struct {
	Store struct {
		Path        string `yaml:"path"`
		ArchivePath string `yaml:"archive_path"`
	} `yaml:"store"`

	Fetch struct {
		ReqPerSec      float64 `yaml:"req_per_sec"`
		Burst          int     `yaml:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"fetch"`

	Sources []Board `yaml:"sources"`

	Categories struct {
		Default string            `yaml:"default"`
		Map     map[string]string `yaml:"map"` // hidden keyword -> category
	} `yaml:"categories"`

	Notify struct {
		Enabled        bool   `yaml:"enabled"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"notify"`

	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// CategoryFor routes a record's hidden keyword to a display category.
func (c Config) CategoryFor(keyword string) string {
	if cat, ok := c.Categories.Map[keyword]; ok {
		return cat
	}
	return c.Categories.Default
}
