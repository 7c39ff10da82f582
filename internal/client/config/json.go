package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aquapure/backoffice/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. The request
// timeout is given in seconds.
type jsonConfig struct {
	ServerURL             string `json:"server_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	StatePath             string `json:"state_path"`
}

// parseJSON overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. If no file is given, the function returns without
// touching cfg. Read or unmarshal errors panic; intended usage is
// defaults -> parseJSON -> parseFlags, where later stages override earlier
// ones.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
}
