package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"ocdm/internal/cdm/adapters/loopback"
	"ocdm/internal/cdm/store/certificate"
	"ocdm/internal/platform/config"
	"ocdm/internal/platform/httpserver"
	"ocdm/internal/platform/kafka"
	"ocdm/internal/platform/logger"
	platformotel "ocdm/internal/platform/otel"
	"ocdm/internal/platform/redis"
	httptransport "ocdm/internal/transport/http"
	"ocdm/pkg/ocdm"
	"ocdm/pkg/platform/audit/publisher"
	kafkasink "ocdm/pkg/platform/audit/publishers/kafka"
	auditmemory "ocdm/pkg/platform/audit/store/memory"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the coordination daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(log)
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides OCDM_ADDR)")
	return cmd
}

// serve wires the stack from cfg and blocks until ctx is done.
func serve(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := platformotel.Setup(ctx, cfg.OTel)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var checks []httptransport.Option
	auditOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(cfg.Audit.BufferSize),
	}
	if cfg.KafkaEnabled() {
		client, err := kafka.New(cfg.Kafka)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := kafka.EnsureTopic(ctx, client, cfg.Kafka, log); err != nil {
			log.Warn("kafka topic setup failed, relying on auto creation", "error", err)
		}
		sink := kafkasink.NewSink(client, cfg.Kafka.Topic,
			kafkasink.WithLogger(log),
			kafkasink.WithMetrics(kafkasink.NewMetrics(reg)),
		)
		auditOpts = append(auditOpts, publisher.WithSink(sink))
		checks = append(checks, httptransport.WithHealthCheck("kafka", client.Ping))
	}
	auditor := publisher.NewPublisher(auditmemory.NewInMemoryStore(), auditOpts...)
	defer auditor.Close()

	var certs ocdm.CertificateStore = certificate.NewInMemoryStore()
	if cfg.RedisEnabled() {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		certs = certificate.NewRedisStore(client.Client)
		checks = append(checks, httptransport.WithHealthCheck("redis", client.Health))
	}

	accessor := ocdm.New(
		ocdm.WithLogger(log),
		ocdm.WithMetrics(reg),
		ocdm.WithAuditPublisher(auditor),
		ocdm.WithCertificateStore(certs),
		ocdm.WithTracer(otel.Tracer("ocdm")),
	)
	if code := accessor.RegisterAdapter(ctx, loopback.New(loopback.WithLogger(log))); code != ocdm.ErrorNone {
		return fmt.Errorf("register loopback adapter: %w", code)
	}
	sys, code := accessor.CreateSystem(loopback.KeySystem)
	if code != ocdm.ErrorNone {
		return fmt.Errorf("create loopback system: %w", code)
	}

	handlerOpts := append([]httptransport.Option{
		httptransport.WithSystems(map[string]*ocdm.System{loopback.KeySystem: sys}),
		httptransport.WithWaitBounds(cfg.Wait.DefaultTimeout, cfg.Wait.MaxTimeout),
	}, checks...)
	handler := httptransport.NewHandler(accessor, log, handlerOpts...)
	router := httptransport.NewRouter(handler, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, log)
	})
	err = g.Wait()

	accessor.DestructSystem(context.Background(), sys)
	accessor.Dispose(context.Background())
	return err
}
