package cli

import (
	"github.com/spf13/cobra"

	"github.com/cris-achiardi/figma-plugins-sub000/internal/api"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/cache"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rebuild API",
		Long: `Serve exposes the reconstruction engine over HTTP. POST a snapshot to
/v1/rebuild to validate it against an in-memory host and receive the
report; POST to /v1/inspect for a tree diagram. Reports are cached, in
Redis when an address is configured and on disk otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}
			if redisAddr == "" {
				redisAddr = cfg.RedisAddr
			}

			var c cache.Cache
			if redisAddr != "" {
				c, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
				if err != nil {
					return err
				}
				logger.Info("report cache backed by redis", "addr", redisAddr)
			} else {
				dir, err := cacheDir(cfg)
				if err != nil {
					return err
				}
				c, err = cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				logger.Debug("report cache backed by files", "dir", dir)
			}
			defer c.Close()

			printInfo("Serving rebuild API on %s", addr)
			return api.NewServer(logger, c).Serve(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the report cache")

	return cmd
}
