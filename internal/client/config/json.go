package config

import (
	"encoding/json"
	"os"

	"github.com/itswijay/feedhub/internal/flagx"
	"github.com/itswijay/feedhub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL         string         `json:"api_base_url"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	RevalidateInterval timex.Duration `json:"revalidate_interval"`
}

// parseJson overlays cfg with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags (flagx.JsonConfigFlags); if
// neither is given, nothing is loaded. Only fields present in the file
// override cfg. Read or unmarshal errors panic; callers may recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	applyJson(cfg, &jc)
}

func applyJson(cfg *Config, jc *JsonConfig) {
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RevalidateInterval.Duration > 0 {
		cfg.RevalidateInterval = jc.RevalidateInterval.Duration
	}
}
