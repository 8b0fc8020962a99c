package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqalign/pkg/cache"
	"github.com/matzehuels/seqalign/pkg/config"
	"github.com/matzehuels/seqalign/pkg/pipeline"
	"github.com/matzehuels/seqalign/pkg/server"
	"github.com/matzehuels/seqalign/pkg/store"
)

// serverKeyPrefix scopes the server's cache keys away from CLI entries
// when both share a backend.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storeKind string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the alignment API over HTTP",
		Long: `Serve the alignment API over HTTP.

Alignments posted to /api/v1/align are kept in the configured store and can
be rendered in any output format afterwards. Prometheus metrics are exposed
on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				c.Config.Server.Store = storeKind
			}
			if err := c.Config.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.Default().Server.Addr, "listen address")
	cmd.Flags().StringVar(&storeKind, "store", config.Default().Server.Store, "alignment store: memory, file, mongo")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	logger := loggerFromContext(ctx)
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, serverKeyPrefix), logger)
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	server.NewMetrics(reg).Register()

	srv := server.New(server.Options{
		Runner:   runner,
		Store:    st,
		Logger:   logger,
		Scoring:  c.Config.Scoring,
		Gatherer: reg,
	})

	printSuccess("Listening on %s", StyleLink.Render(c.Config.Server.Addr))
	printDetail("Store: %s  Cache: %s", c.Config.Server.Store, c.cacheBackend(noCache))
	printNextStep("Try", fmt.Sprintf("curl -X POST localhost%s/api/v1/align -d '{\"left\":\"CGCA\",\"top\":\"CACGTAT\"}'",
		portOf(c.Config.Server.Addr)))
	return srv.ListenAndServe(ctx, c.Config.Server.Addr)
}

// newStore opens the configured alignment store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Server.Store {
	case config.StoreFile:
		return store.NewFileStore(c.Config.Server.StoreDir)
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.Config.Server.MongoURI,
			Database: c.Config.Server.MongoDatabase,
		})
	}
	return store.NewMemoryStore(), nil
}

func (c *CLI) cacheBackend(noCache bool) string {
	if noCache {
		return config.CacheNone
	}
	return c.Config.Cache.Backend
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}
