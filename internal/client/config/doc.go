// Package config loads runtime configuration for the ProfileKeeper CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults ((*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   address:port of the profile server
//	-i int      online status check interval (seconds)
//	-d string   path of the local SQLite cache database
//
// JSON (intervals are "3s"-style strings or integer nanoseconds):
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "/var/lib/profilekeeper/cache.db"
//	}
package config
