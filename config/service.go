package config

import (
	"fmt"
	"strings"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/validation"
)

// Config is the seqkit CLI configuration.
//
//	name: seqkit
//	environment: development
//	logging:
//	  level: info
//	observability:
//	  enabled: false
//	words:
//	  top: 10
//	  min_len: 1
//	  stop_words: [the, a, an]
type Config struct {
	Name          string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string               `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Words         WordsConfig          `yaml:"words" mapstructure:"words"`
}

// WordsConfig holds defaults for the words command. Flags override them.
type WordsConfig struct {
	Top       int      `yaml:"top" mapstructure:"top" validate:"gte=1"`
	MinLen    int      `yaml:"min_len" mapstructure:"min_len" validate:"gte=0"`
	StopWords []string `yaml:"stop_words" mapstructure:"stop_words"`
}

// ApplyDefaults applies default values to unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "seqkit"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Words.Top == 0 {
		c.Words.Top = 10
	}
	if c.Words.MinLen == 0 {
		c.Words.MinLen = 1
	}
	for i, w := range c.Words.StopWords {
		c.Words.StopWords[i] = strings.ToLower(strings.TrimSpace(w))
	}
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks struct tags first and then the nested sections.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("logging: %v", err))
	}
	if err := c.Observability.Validate(); err != nil {
		return errors.InvalidConfig(err.Error())
	}
	return nil
}
