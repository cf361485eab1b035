// Package config loads runtime configuration for the taskkeeper CLI client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or the
//     TASKKEEPER_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the taskkeeper server
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
// Durations are timex.Duration, so they can be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "5s"
//	}
package config
