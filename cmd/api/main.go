// @title           DocRouter API
// @version         1.0
// @description     Classifies uploaded documents by type and business intent and routes them to the matching handler.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/data/store"
	"github.com/akolanti/DocRouter/internal/dispatcher"
	jobmodel "github.com/akolanti/DocRouter/internal/domain/jobModel"
	"github.com/akolanti/DocRouter/internal/handlers"
	"github.com/akolanti/DocRouter/internal/job"
	"github.com/akolanti/DocRouter/internal/mcpserver"
	"github.com/akolanti/DocRouter/internal/publisher"
	"github.com/akolanti/DocRouter/internal/server"
	"github.com/akolanti/DocRouter/internal/worker"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	settings := config.Load()

	logger_i.Init(settings.LogLevel, settings.IsProd)
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	backends := store.OpenBackends(serviceContext, settings)
	if backends.Records == nil || backends.Jobs == nil {
		logger.Error("No store backend available. Shutting down.")
		return
	}

	actionPublisher, err := publisher.New(settings)
	if err != nil {
		logger.Error("Kafka publisher failed to initialize, action events disabled", "error", err)
		actionPublisher = publisher.NoopPublisher{}
	}

	classifier := dispatcher.NewDefaultService(backends.Records, actionPublisher)

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          backends.Jobs,
	}
	logger.Info("Starting job service", "storeBackend", backends.Kind)
	service := job.InitJobService(serviceConfig)

	handlers.InitJobHandler(handlers.Dependencies{
		Jobs:       service,
		Classifier: classifier,
		Records:    backends.Records,
	})

	//init worker pool
	worker.InitServices(service, classifier)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	var mcpHandler http.Handler
	if settings.MCPEnabled {
		mcpHandler = mcpserver.Handler(mcpserver.New(classifier, backends.Records))
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
		Publisher:        actionPublisher,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, mcpHandler)

	<-stopExecution
	logger.Info("Server stopped")
}
