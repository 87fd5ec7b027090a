package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/kdemir/pipekit/auth"
	"github.com/kdemir/pipekit/config"
	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/notify"
	"github.com/kdemir/pipekit/observability"
	"github.com/kdemir/pipekit/pipeline"
	"github.com/kdemir/pipekit/run"
	"github.com/kdemir/pipekit/server"
	"github.com/kdemir/pipekit/version"
)

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configFile := fs.String("config", "", "explicit config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(&cfg.Logging)
	log := logger.GetGlobalLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		tracerCfg := observability.DefaultTracerConfig(cfg.Name)
		tracerCfg.ServiceVersion = version.GetVersionInfo().Version
		tracerCfg.Environment = cfg.Environment
		tracerCfg.Endpoint = cfg.Observability.Endpoint
		tracerCfg.Insecure = cfg.Observability.Insecure
		tracerCfg.SampleRate = cfg.Observability.SampleRate

		tp, err := observability.InitTracer(ctx, tracerCfg)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		meterCfg := observability.DefaultMeterConfig(cfg.Name)
		meterCfg.ServiceVersion = tracerCfg.ServiceVersion
		meterCfg.Environment = cfg.Environment
		meterCfg.Endpoint = cfg.Observability.Endpoint
		meterCfg.Insecure = cfg.Observability.Insecure

		mp, err := observability.InitMeter(ctx, &meterCfg)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err = observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
	}

	engine := run.NewEngine(cfg.Engine.MaxParallel, log)
	registry := run.NewRegistry()
	registerBuiltins(registry, log, metrics)

	api := server.API{
		ServiceName:           cfg.Name,
		Loader:                pipeline.NewFileLoader(cfg.Pipelines.Dirs...),
		Engine:                engine,
		Registry:              registry,
		Store:                 run.NewStore(),
		RunRateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	}
	if len(cfg.Notify.URLs) > 0 {
		api.Notifier = notify.New(cfg.Notify, log)
	}
	if cfg.Auth.Enabled {
		svc, err := auth.NewService(auth.Config{Secret: cfg.Auth.Secret, Issuer: cfg.Auth.Issuer})
		if err != nil {
			return fmt.Errorf("configuring auth: %w", err)
		}
		api.Auth = svc
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	server.NewAPI(api, log).RegisterRoutes(srv)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("pipekit serving", map[string]interface{}{
		"addr":      srv.Addr(),
		"pipelines": cfg.Pipelines.Dirs,
	})

	<-ctx.Done()
	stop()
	return srv.Stop(context.Background())
}

// registerBuiltins installs the logging executors served out of the box,
// wrapped with tracing and metrics when observability is enabled. Real
// deployments replace these with task-specific executors.
func registerBuiltins(reg *run.Registry, log *logger.Logger, metrics *observability.Metrics) {
	for _, name := range []string{"git-clone", "flake8", "nose", "buildah", "openshift-client", "env-setup"} {
		name := name
		kind := pipeline.KindTask
		if name == "env-setup" {
			kind = pipeline.KindClusterTask
		}
		ref := pipeline.TaskRef{Name: name, Kind: kind}

		exec := run.Executor(run.ExecutorFunc{
			ExecutorName: name,
			Fn: func(_ context.Context, in run.TaskInput) error {
				log.Info("task executed", logger.Fields(logger.FieldTask, in.Task, "executor", name))
				return nil
			},
		})
		if metrics != nil {
			exec = run.WithTracing(run.WithMetrics(exec, metrics))
		}
		reg.Register(ref.Key(), exec)
	}
}
