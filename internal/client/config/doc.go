// Package config loads runtime configuration for the FeedHub client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-r int      session revalidation interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "30s",
//	  "revalidate_interval": "5m"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
