package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Paths struct {
	Words       string `yaml:"words" mapstructure:"words"`
	Topics      string `yaml:"topics" mapstructure:"topics"`
	Ontology    string `yaml:"ontology" mapstructure:"ontology"`
	TaxonomyMap string `yaml:"taxonomy_map" mapstructure:"taxonomy_map"`
	Outputs     string `yaml:"outputs" mapstructure:"outputs"`
}
type Output struct {
	Format string `yaml:"format" mapstructure:"format"`
	Indent string `yaml:"indent" mapstructure:"indent"`
}
type Batch struct {
	Workers     int    `yaml:"workers" mapstructure:"workers"`
	Manifest    bool   `yaml:"manifest" mapstructure:"manifest"`
	MetricsFile string `yaml:"metrics_file" mapstructure:"metrics_file"`
}
type Taxonomy struct {
	OtherID string `yaml:"other_id" mapstructure:"other_id"`
}
type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
	Output   Output   `yaml:"output" mapstructure:"output"`
	Batch    Batch    `yaml:"batch" mapstructure:"batch"`
	Taxonomy Taxonomy `yaml:"taxonomy" mapstructure:"taxonomy"`
}

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const corpusRoot = "data/ami_public_manual_1.6.2"

// SetDefaults registers every key with its default so environment variables
// and flags can override any of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "amitopics")
	v.SetDefault("pipeline.version", "0.1.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("paths.words", filepath.Join(corpusRoot, "words"))
	v.SetDefault("paths.topics", filepath.Join(corpusRoot, "topics"))
	v.SetDefault("paths.ontology", filepath.Join(corpusRoot, "ontologies", "default-topics.xml"))
	v.SetDefault("paths.taxonomy_map", "")
	v.SetDefault("paths.outputs", filepath.Join("data", "transcripts"))
	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("output.indent", " ")
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.manifest", true)
	v.SetDefault("batch.metrics_file", "")
	v.SetDefault("taxonomy.other_id", "top.4")
}

// Load reads configuration from explicit, or when empty from the first of
// config/$CONFIG_ENV/config.yaml and src/shared/config.yaml that exists.
// No config file at all is fine; defaults and AMI_* variables still apply.
func Load(v *viper.Viper, explicit string) (*Root, error) {
	SetDefaults(v)
	v.SetEnvPrefix("AMI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		path = probe()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func probe() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	var guess []string = []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks values that would otherwise fail late.
func (c *Root) Validate() error {
	var errs []error
	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("output.format: unsupported %q", c.Output.Format))
	}
	if c.Batch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("batch.workers: must be positive, got %d", c.Batch.Workers))
	}
	if c.Taxonomy.OtherID == "" {
		errs = append(errs, errors.New("taxonomy.other_id: must not be empty"))
	}
	return errors.Join(errs...)
}
