package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	styrene "github.com/TheOfficialSeb/Styrene"
	"github.com/TheOfficialSeb/Styrene/internal/config"
	"github.com/TheOfficialSeb/Styrene/internal/errors"
)

type serveOptions struct {
	configPath string
	host       string
	port       int
	dir        string
	prefix     string
	fallback   string
	dev        bool
	s3Bucket   string
	s3Region   string
}

func serveCmd() *cobra.Command {
	return newServeCmd(&serveOptions{})
}

func newServeCmd(opts *serveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a static site",
		Long: `Serve files from a directory or an S3 bucket.

Settings come from styrene.json or styrene.toml, found by walking up
from the working directory or given with --config. Flags override
the file. Without either, the working directory is served on :8080.

Examples:
  styrene serve
  styrene serve --dir=public --fallback=index.html
  styrene serve --dev --port=3000
  styrene serve --s3-bucket=my-site --s3-region=eu-west-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: nearest styrene.json or styrene.toml)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Directory to serve")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "URL prefix files are served under")
	cmd.Flags().StringVar(&opts.fallback, "fallback", "", "File served for unknown paths (SPA mode)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Enable live reload")
	cmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "Serve from this S3 bucket instead of a directory")
	cmd.Flags().StringVar(&opts.s3Region, "s3-region", "", "Region of the S3 bucket")

	return cmd
}

// load reads the config file, if any, and applies flag overrides.
func (o *serveOptions) load(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if path, err := config.FindConfigFile("."); err == nil {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("dir") {
		cfg.Static.Dir = o.dir
		cfg.Static.S3 = nil
	}
	if flags.Changed("prefix") {
		cfg.Static.Prefix = o.prefix
	}
	if flags.Changed("fallback") {
		cfg.Static.Fallback = o.fallback
	}
	if flags.Changed("dev") {
		cfg.Dev.Reload = o.dev
	}
	if o.s3Bucket != "" {
		if cfg.Static.S3 == nil {
			cfg.Static.S3 = &config.S3Config{}
		}
		cfg.Static.S3.Bucket = o.s3Bucket
	}
	if o.s3Region != "" && cfg.Static.S3 != nil {
		cfg.Static.S3.Region = o.s3Region
	}

	if cfg.Static.Dir == "" && cfg.Static.S3 == nil {
		cfg.Static.Dir = "."
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	logger := cfg.Logger(cmd.ErrOrStderr())
	appCfg, err := cfg.ToApp(logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printBanner(w)
	success(w, "Listening on %s", cfg.Addr())
	if s3 := cfg.Static.S3; s3 != nil {
		info(w, "Serving s3://%s/%s at %s", s3.Bucket, s3.Prefix, cfg.Static.Prefix)
	} else {
		info(w, "Serving %s at %s", appCfg.Static.Dir, cfg.Static.Prefix)
	}
	if cfg.Dev.Reload {
		info(w, "Live reload on")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := styrene.New(appCfg)
	if err := app.Run(ctx); err != nil {
		return errors.New("S001").Wrap(err)
	}
	return nil
}
