package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shieldpool/subgraph-go/internal/adapter"
	"github.com/shieldpool/subgraph-go/internal/client"
	"github.com/shieldpool/subgraph-go/internal/config"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/registry"
	"github.com/shieldpool/subgraph-go/internal/store"
)

var (
	configFile   = flag.String("config", "", "Path to configuration file")
	envPath      = flag.String("env", "config/", "Path to environment files")
	network      = flag.String("network", "ethereum", "Network to query")
	poolID       = flag.String("pool", "", "Composite pool ID to inspect (network-address-index)")
	days         = flag.Int("days", 30, "History window in days for stats")
	syncCache    = flag.Bool("sync", false, "Mirror the pool's memberships into the local cache")
	registryPath = flag.String("registry", "", "Path to the known-deployments registry JSON")
	rps          = flag.Float64("rps", 0, "Throttle queries to this many requests per second (0 disables)")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadClientConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "poolscan",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	net := domain.Network(*network)
	endpoint := cfg.Subgraph.Endpoints[*network]
	if endpoint == "" {
		logger.FatalCtx(ctx, "No subgraph endpoint configured for network",
			zap.String("network", *network))
	}

	var c *client.Client
	if *rps > 0 {
		c, err = client.NewHTTPThrottled(net, endpoint, cfg.Subgraph.HTTPTimeout, *rps, 1)
	} else {
		c, err = client.NewHTTP(net, endpoint, cfg.Subgraph.HTTPTimeout)
	}
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create client", zap.Error(err))
	}

	// The record cache is optional; without a database writes are discarded
	records := store.NewNoopStore()
	if cfg.Database.Host != "" {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		if err := store.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate cache schema", zap.Error(err))
		}
		records = store.NewPGStore(db)
	}

	// Load the known-deployments registry when configured
	var deployments registry.DeploymentRegistry
	if *registryPath != "" {
		loader := registry.NewDeploymentRegistryLoader(adapter.NewFileSystem(), adapter.NewJSON())
		deployments, err = loader.Load(*registryPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load deployment registry",
				zap.Error(err),
				zap.String("path", *registryPath))
		}
	}

	if err := run(ctx, c, records, deployments); err != nil {
		logger.ErrorCtx(ctx, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, records store.RecordStore, deployments registry.DeploymentRegistry) error {
	since := time.Now().AddDate(0, 0, -*days).Unix()

	if *poolID == "" {
		return networkOverview(ctx, c, deployments, since)
	}

	if deployments != nil && !deployments.IsTrustedPool(*poolID) {
		logger.WarnCtx(ctx, "Pool is not in the deployment registry", zap.String("pool", *poolID))
	}
	return poolReport(ctx, c, records, *poolID, since)
}

// networkOverview prints network-wide liquidity and volume trends
func networkOverview(ctx context.Context, c *client.Client, deployments registry.DeploymentRegistry, since int64) error {
	pools, err := c.Pools().OrderByLiquidity().Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pools: %w", err)
	}

	total, err := c.Pools().TotalDeposited(ctx)
	if err != nil {
		return fmt.Errorf("failed to sum deposits: %w", err)
	}

	growth, err := c.GlobalDailyStats().Since(since).VolumeGrowth(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute volume growth: %w", err)
	}

	fmt.Printf("Network:         %s\n", c.Network())
	fmt.Printf("Pools:           %d\n", len(pools))
	fmt.Printf("Total deposited: %s\n", total.String())
	fmt.Printf("Volume growth:   %.2f%%\n", growth)
	for _, p := range pools {
		marker := ""
		if deployments != nil && !deployments.IsTrustedPool(p.ID) {
			marker = " (unregistered)"
		}
		fmt.Printf("  %-40s asset=%-8s members=%s deposited=%s%s\n",
			p.ID, p.Asset, p.MemberCount, p.TotalDeposited, marker)
	}

	return nil
}

// poolReport prints membership and volume statistics for one pool
func poolReport(ctx context.Context, c *client.Client, records store.RecordStore, poolID string, since int64) error {
	stats, err := c.Memberships().ByPool(poolID).Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute gas stats: %w", err)
	}

	volume, err := c.Operations().ByPool(poolID).Between(since, time.Now().Unix()).Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute volume stats: %w", err)
	}

	activity, err := c.PoolDailyStats().ByPool(poolID).Since(since).Activity(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute daily activity: %w", err)
	}

	fmt.Printf("Pool:            %s\n", poolID)
	fmt.Printf("Members:         %d (%d active, %.2f%% usage)\n",
		stats.Count, stats.ActiveCount, stats.UsageRate)
	fmt.Printf("Gas used:        total=%s avg=%s median=%s\n",
		stats.TotalGasUsed, stats.AverageGasUsed, stats.MedianGasUsed)
	fmt.Printf("Unique owners:   %d\n", stats.UniqueOwners)
	fmt.Printf("Operations:      %d, volume=%s, fees=%s\n",
		volume.Count, volume.TotalAmount, volume.TotalFees)
	fmt.Printf("Active days:     %d, growth=%.2f%%\n", activity.Days, activity.Growth)
	if activity.PeakDay != nil {
		fmt.Printf("Peak day:        %s (volume=%s)\n", activity.PeakDay.ID, activity.PeakDay.Volume)
	}

	if *syncCache {
		sync := client.NewCacheSync(c, records)
		written, err := sync.SyncPool(ctx, poolID)
		if err != nil {
			return fmt.Errorf("failed to sync pool cache: %w", err)
		}
		fmt.Printf("Cache:           %d records synced\n", written)
	}

	return nil
}
