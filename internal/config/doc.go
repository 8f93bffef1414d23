// Package config loads styrene.json or styrene.toml files for the
// styrene command.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "127.0.0.1",
//	    "port": 8080,
//	    "readTimeout": "5s",
//	    "shutdownTimeout": "10s"
//	  },
//	  "static": {
//	    "dir": "./public",
//	    "prefix": "/",
//	    "fallback": "index.html",
//	    "cache": "production",
//	    "headers": {"X-Frame-Options": "DENY"}
//	  },
//	  "dev": {"reload": true, "interval": "200ms"},
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "tracing": {"enabled": false},
//	  "log": {"level": "info", "format": "json"}
//	}
//
// The same keys work in TOML. Setting static.s3 serves files from a
// bucket instead of static.dir:
//
//	[static.s3]
//	bucket = "my-site"
//	prefix = "public/"
//	region = "eu-west-1"
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	appCfg, err := cfg.ToApp(cfg.Logger(os.Stderr))
package config
