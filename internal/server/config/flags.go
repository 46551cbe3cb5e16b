package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-s", "-t", "-l", "-k", "-R", "-u", "-p", "-b", "-g", "-e"}

// parseFlags overlays config with command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-m string   HTTP admin bind address (health and metrics)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l int      lookup cache TTL, seconds
//	-k string   lookup cache backend: memory or redis
//	-R string   redis address
//	-u/-p       S3 access key and secret
//	-b string   S3 audit bucket (empty disables auditing)
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(config *Config) {
	var tokenMinutes, cacheSeconds int

	flagx.Parse("server", os.Args[1:], serverFlags, func(fs *flag.FlagSet) {
		fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
		fs.StringVar(&config.EndpointAddrHTTP, "m", config.EndpointAddrHTTP, "address and port of the admin HTTP server")
		fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
		fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
		fs.IntVar(&tokenMinutes, "t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
		fs.IntVar(&cacheSeconds, "l", int(config.LookupCacheTTL.Seconds()), "lookup cache TTL (in seconds)")
		fs.StringVar(&config.CacheBackend, "k", config.CacheBackend, "lookup cache backend (memory|redis)")
		fs.StringVar(&config.RedisAddr, "R", config.RedisAddr, "redis address")
		fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
		fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
		fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 audit bucket")
		fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
		fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	})

	config.AccessTokenValidityDuration = time.Duration(tokenMinutes) * time.Minute
	config.LookupCacheTTL = time.Duration(cacheSeconds) * time.Second
}
