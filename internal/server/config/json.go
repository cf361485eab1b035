package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations are
// timex.Duration so both "10s" and integer nanoseconds are accepted.
// StrictUpdate is a pointer so an explicit false can be told apart from an
// absent key.
type JsonConfig struct {
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	SnapshotBackend     string         `json:"snapshot_backend"`
	SnapshotPath        string         `json:"snapshot_path"`
	SnapshotName        string         `json:"snapshot_name"`
	DatabaseDSN         string         `json:"database_dsn"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3ObjectKey         string         `json:"s3_object_key"`
	BcryptCost          int            `json:"bcrypt_cost"`
	MaxInFlight         int            `json:"max_in_flight"`
	StrictUpdate        *bool          `json:"strict_update"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
	AllowedOriginPrefix string         `json:"allowed_origin_prefix"`
}

// parseJson overlays values from a JSON file onto config.
//
// The file is located through flagx.ConfigFile: the -c/-config flags first,
// then the TASKKEEPER_CONFIG environment variable. With neither set nothing
// is loaded. Only keys present with a non-zero value override config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.SnapshotBackend, c.SnapshotBackend)
	setString(&config.SnapshotPath, c.SnapshotPath)
	setString(&config.SnapshotName, c.SnapshotName)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3ObjectKey, c.S3ObjectKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFile, c.LogFile)
	setString(&config.AllowedOriginPrefix, c.AllowedOriginPrefix)

	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.MaxInFlight != 0 {
		config.MaxInFlight = c.MaxInFlight
	}
	if c.StrictUpdate != nil {
		config.StrictUpdate = *c.StrictUpdate
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
