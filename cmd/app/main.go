package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joseluisinigo/logonhours/internal/adapters/in/cli"
	"github.com/joseluisinigo/logonhours/internal/adapters/in/http"
	"github.com/joseluisinigo/logonhours/internal/adapters/in/rabbitmq"
	"github.com/joseluisinigo/logonhours/internal/adapters/out/activedirectory"
	"github.com/joseluisinigo/logonhours/internal/adapters/out/cache"
	"github.com/joseluisinigo/logonhours/internal/adapters/out/logger"
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
	"github.com/joseluisinigo/logonhours/internal/core/services"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"directoryUrl":    cfg.Directory.URL,
		"httpEnabled":     cfg.HTTP.Enabled,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	directoryAdapter, err := activedirectory.NewLdapAdapter(cfg, mainLogger.WithModule("LdapAdapter"))
	if err != nil {
		log.Error("app.directory.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer directoryAdapter.Close()

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	scheduleService := services.NewScheduleService(
		directoryAdapter,
		cacheAdapter,
		mainLogger.WithModule("ScheduleService"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewApplyListener(
			scheduleService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if cfg.HTTP.Enabled {
		router := gin.Default()
		controller := http.NewScheduleController(scheduleService, cfg)
		controller.RegisterRoutes(router)

		go func() {
			log.Info("app.http.starting", out.LogFields{
				"host": cfg.HTTP.Host,
				"port": cfg.HTTP.Port,
			})

			if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
				log.Error("app.http.failed", out.LogFields{
					"error": err.Error(),
				})
				sigChan <- syscall.SIGTERM
			}
		}()
	}

	// Service mode: block until a signal. Otherwise run the interactive
	// session on the terminal, the tool's default face.
	if cfg.HTTP.Enabled || cfg.RabbitMQ.Enabled {
		sig := <-sigChan
		log.Info("app.shutdown.initiated", out.LogFields{
			"signal": sig.String(),
		})
		return
	}

	session := cli.NewSession(scheduleService, mainLogger, os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil {
		log.Error("app.session.failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
