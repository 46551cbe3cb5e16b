package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
)

// parseFlags overlays cfg with -a, -i and -d. Other arguments are ignored.
func parseFlags(cfg *Config) {
	var interval int

	flagx.Parse("client", os.Args[1:], []string{"-a", "-i", "-d"}, func(fs *flag.FlagSet) {
		fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
		fs.IntVar(&interval, "i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
		fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local cache database path")
	})

	cfg.OnlineCheckInterval = time.Duration(interval) * time.Second
}
