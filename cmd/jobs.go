package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-qrplatba/app/service"
	"github.com/vibast-solutions/ms-go-qrplatba/config"
)

var (
	workerMode bool
)

var descriptorsCmd = &cobra.Command{
	Use:   "descriptors",
	Short: "Run stored descriptor maintenance commands",
}

var descriptorsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stored descriptors older than the retention window",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"descriptors_purge",
			func(cfg *config.Config) time.Duration { return cfg.Jobs.PurgeInterval },
			func(s *service.DescriptorService, ctx context.Context) error {
				return s.RunPurgeBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(descriptorsCmd)
	descriptorsCmd.AddCommand(descriptorsPurgeCmd)

	descriptorsCmd.PersistentFlags().BoolVar(&workerMode, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *service.DescriptorService, ctx context.Context) error,
) {
	cfg, descriptorService, cleanup := mustCreateDescriptorService()
	defer cleanup()

	if workerMode {
		runWorker(name, intervalResolver(cfg), descriptorService, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(descriptorService, ctx) })
}

func runWorker(
	name string,
	interval time.Duration,
	descriptorService *service.DescriptorService,
	fn func(s *service.DescriptorService, ctx context.Context) error,
) {
	if interval <= 0 {
		logrus.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runJob(name, func() error { return fn(descriptorService, ctx) })

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logrus.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(descriptorService, ctx) })
		}
	}
}

func runJob(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return err
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
	return nil
}
