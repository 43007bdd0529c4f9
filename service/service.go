package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cpusched/api"
	"cpusched/clients"
	"cpusched/domain"
	"cpusched/helpers"
	"cpusched/repositories"

	"github.com/caarlos0/env/v11"
	graphite "github.com/cyberdelia/go-metrics-graphite"
	"github.com/dgraph-io/ristretto"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Service describes the structure used for starting the web service
type Service struct {
	envFile string
}

// NewService returns a new service object reading its environment from envFile
func NewService(envFile string) *Service {
	return &Service{envFile: envFile}
}

// LoadConfig reads the optional env file and parses the service config
func (s *Service) LoadConfig(log *zap.Logger) (*domain.Config, error) {
	if s.envFile != "" {
		err := godotenv.Load(s.envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading environment variables file: %w", err)
		}
		if err == nil {
			log.Debug("Env variables are loaded", zap.String("file", s.envFile))
		}
	}

	cfg := &domain.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultQuantum <= 0 {
		return nil, fmt.Errorf("%w: DEFAULT_QUANTUM must be positive", domain.ErrInvalidInput)
	}
	return cfg, nil
}

// StartWebService initializes logger, restful and swagger api, run storage, report export, local cache
// and metrics for graphite, then serves until SIGINT or SIGTERM
func (s *Service) StartWebService() {
	log, _ := zap.NewDevelopment()
	defer log.Sync()

	ws := new(restful.WebService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := s.LoadConfig(log)
	if err != nil {
		log.Fatal("Error loading config", zap.Error(err))
		return
	}

	//initialize local cache for schedule results
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,     // Num keys to track frequency of (1M).
		MaxCost:     1 << 19, // Maximum number of cached runs.
		BufferItems: 64,      // Number of keys per Get buffer.
	})
	if err != nil {
		log.Fatal("Error intializing ristretto Cache", zap.Error(err))
		return
	}
	log.Debug("Local Ristretto Cache initalized")

	// initialize repos
	var runStore api.RunStore
	if cfg.EnablePostgres {
		psqlRepo, err := repositories.NewPostgreSqlRepo(ctx, cfg.PsqlUser, cfg.PsqlPass, cfg.DbHost, cfg.DbName, cfg.DbPort, log)
		if err != nil {
			log.Fatal("[FATAL] Error in starting postgres service", zap.Error(err))
			return
		}
		defer psqlRepo.Close()
		runStore = psqlRepo
		log.Debug("Postgres Repo initialized")
	} else {
		runStore = repositories.NewMemoryRepo(log)
		log.Debug("Memory Repo initialized")
	}

	var reportUploader api.ReportUploader
	if cfg.EnableS3 {
		s3Client, err := clients.NewS3Client(ctx, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, cfg.Region, log)
		if err != nil {
			log.Fatal("[FATAL] Error in creating s3 client", zap.Error(err))
			return
		}
		reportUploader = s3Client
		log.Debug("S3 client initialized")
	}

	if cfg.EnableCPUProfiler {
		profilerRepo := repositories.NewProfileService(cfg.CPUProfileFile, log)
		if err := profilerRepo.StartProfiling(); err != nil {
			log.Fatal("[FATAL] Error in starting cpu profiler", zap.Error(err))
			return
		}
		defer profilerRepo.StopProfiling()
		log.Debug("Profiling Repo initialized")
	}

	// initialize tcp address for graphite
	if cfg.GraphiteHost != "" {
		graphiteAddr, err := net.ResolveTCPAddr("tcp", cfg.GraphiteHost)
		if err != nil {
			log.Fatal("[FATAL] Failed to resolve tcp address for graphite", zap.Error(err))
			return
		}
		go graphite.Graphite(metrics.DefaultRegistry, 10*time.Second, "cpusched", graphiteAddr)
		log.Debug("Initialize graphite for metrics")
	}

	// initialize api
	apiManager := api.NewAPI(ctx, runStore, reportUploader, cache, log, metrics.DefaultRegistry,
		cfg.DefaultQuantum, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	apiManager.RegisterRoutes(ws)

	container := restful.NewContainer()
	container.Add(ws)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(), // you control what services are visible
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject}
	container.Add(restfulspec.NewOpenAPIService(config))

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		CookiesAllowed: false,
		Container:      container}
	container.Filter(cors.Filter)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        container,
		ReadTimeout:    time.Minute,
		WriteTimeout:   time.Minute,
		IdleTimeout:    5 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}
	useTLS := cfg.CertFile != "" && cfg.CertKeyFile != ""
	if useTLS {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = http2.ConfigureServer(server, &http2.Server{})
		if err != nil {
			log.Fatal("http2 Configure server", zap.Error(err))
			return
		}
	}

	log.Info("Started api service", zap.String("addr", cfg.ListenAddr), zap.Bool("tls", useTLS))

	go func() {
		if useTLS {
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.CertKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", zap.Error(err))
		}
		for _, metric := range helpers.MetricsName {
			metrics.Unregister(metric)
		}

		log.Debug("Stopped serving new connections.")
	}()

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", zap.Error(err))
	}

	log.Debug("Graceful shutdown complete.")
}

// enrichSwaggerObject describes swagger specs
func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "CPU Scheduling Simulator API",
			Description: "Simulates FCFS, SJF, Priority and Round Robin scheduling over a process set",
			License: &spec.License{
				LicenseProps: spec.LicenseProps{
					Name: "MIT",
					URL:  "http://mit.org",
				},
			},
			Version: "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{{TagProps: spec.TagProps{
		Name:        "schedule",
		Description: "Running and retrieving simulations"}},
		{TagProps: spec.TagProps{
			Name:        "processes",
			Description: "Demo process generation"}}}
}
