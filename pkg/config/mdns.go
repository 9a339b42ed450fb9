package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultDomain is always announced, even when the config omits it.
const DefaultDomain = "yunohost.local"

// Config is the declarative announcer configuration. It lists the
// network interfaces to announce on and the domains to announce there.
type Config struct {
	Interfaces []string `yaml:"interfaces"`
	Domains    []string `yaml:"domains"`
}

// ErrMissingFields is returned when the config lacks all required fields
// and the announcer therefore has nothing sensible to do.
type ErrMissingFields struct {
	Fields []string
}

func (e ErrMissingFields) Error() string {
	return fmt.Sprintf("config is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Load reads and unmarshals the announcer configuration at the given
// path. An unreadable or unparsable file is a fatal condition for the
// whole process, so the error propagates to the caller.
func Load(path string) (*Config, error) {
	data, err := appOs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config at %s", path)
	}

	conf := &Config{}
	if err = yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config at %s", path)
	}

	return conf, nil
}

// Validate checks that the required fields were present in the config
// file. A single missing field only produces a diagnostic because the
// caller can still act sensibly (exit cleanly without interfaces, fall
// back to the default domain without domains). Both fields missing means
// the file wasn't a config at all.
func (c *Config) Validate() error {
	var missing []string
	if c.Interfaces == nil {
		missing = append(missing, "interfaces")
	}
	if c.Domains == nil {
		missing = append(missing, "domains")
	}

	if len(missing) == 2 {
		return ErrMissingFields{Fields: missing}
	}

	for _, field := range missing {
		log.WithField("field", field).Warnln("Required config field is missing")
	}

	return nil
}

// EnsureDefaultDomain appends the default domain to the announced
// domains unless it is already listed. This is the only mutation applied
// to user supplied configuration.
func (c *Config) EnsureDefaultDomain() {
	for _, domain := range c.Domains {
		if domain == DefaultDomain {
			return
		}
	}
	c.Domains = append(c.Domains, DefaultDomain)
}
