package config

import (
	"encoding/json"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/lelibreauquotidien/yunomdns/internal/wrap"
)

const (
	Prefix = "yunomdns"

	// SystemPath is where the config generation hook drops the
	// declarative announcer configuration.
	SystemPath = "/etc/yunohost/mdns.yml"
)

// configFile is the path suffix that's appended to an XDG compliant
// directory to find the announcer configuration for non-root runs.
var configFile = filepath.Join(Prefix, "mdns.yml")

var (
	appOs  wrap.Oser  = wrap.Os{}
	appXdg wrap.Xdger = wrap.Xdg{}
)

var Global = GlobalConfig{
	Version:       getVersion(),
	LogFile:       "",
	LogLevel:      int(log.InfoLevel),
	LogAppend:     false,
	TelemetryHost: "localhost",
	TelemetryPort: 0,
	ConfigFile:    "",
}

// GlobalConfig holds process wide settings that are populated from
// command line flags and environment variables.
type GlobalConfig struct {
	// Version holds the fully qualified version string in the form: v0.5.0-d4aeaa2
	Version string `json:"-"`

	// LogFile is the location where logs should be written to
	LogFile string

	// LogLevel indicates which severity levels should be written to LogFile
	LogLevel int

	// LogAppend indicates whether logs should be appended to LogFile
	LogAppend bool

	// TelemetryHost holds the host at which prometheus metrics can be extracted
	TelemetryHost string

	// TelemetryPort holds the port at which prometheus metrics can be extracted
	TelemetryPort int

	// ConfigFile is the file from which the announced interfaces and domains are read
	ConfigFile string
}

func (c *GlobalConfig) String() string {
	data, _ := json.Marshal(c)
	return string(data)
}

// DefaultPath returns the system wide config location when it exists and
// an XDG compliant location otherwise, so the announcer can also run as
// an unprivileged user against a local config.
func DefaultPath() (string, error) {
	if _, err := appOs.Stat(SystemPath); err == nil {
		return SystemPath, nil
	}
	return appXdg.ConfigFile(configFile)
}
