// Package config loads runtime configuration for the Openticket client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-d string   data directory
//	-l string   log level
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Durations are timex.Duration values, so they can be either strings like
// "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://helpdesk.example.com/api",
//	  "request_timeout": "5s",
//	  "data_dir": "/var/lib/openticket",
//	  "log_level": "debug",
//	  "online_check_interval": "3s"
//	}
//
// This package does not read environment variables.
package config
