package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/DocRouter/internal/adapter/utils"
	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/middleware"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server     *http.Server
	_logger    *logger_i.Logger
	loggerOnce sync.Once
)

// log binds the component logger after main has installed the handler.
func log() *logger_i.Logger {
	loggerOnce.Do(func() {
		_logger = logger_i.NewLogger("Server")
	})
	return _logger
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
	Publisher        io.Closer
}

// RegisterRoutes mounts the document API on r. mcpHandler is skipped when nil.
func RegisterRoutes(r *chi.Mux, mcpHandler http.Handler) {
	r.Get("/health", middleware.GetHandler)
	r.Post("/process", middleware.ProcessHandler)
	r.Post("/process/async", middleware.ProcessAsyncHandler)
	r.Get("/status/{id}", middleware.GetStatusHandler)
	r.Get("/memory/{id}", middleware.GetMemoryHandler)
	r.Patch("/memory/{id}", middleware.PatchMemoryHandler)
	r.Get("/memory/{id}/history", middleware.GetHistoryHandler)

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		log().Info("MCP tools mounted", "path", "/mcp")
	}
}

func CreateServer(listenAddr string, mcpHandler http.Handler) {
	r := utils.GetRouter()
	RegisterRoutes(r.Router, mcpHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	log().Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log().Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	log().Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				log().Error("Could not shutdown gracefully", "error", err)
			}
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()

		if shutdownParams.Publisher != nil {
			if err := shutdownParams.Publisher.Close(); err != nil {
				log().Error("Could not close action publisher", "error", err)
			}
		}
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		log().Info("Gracefully is shutting down")
	case <-ctx.Done():
		log().Info("Force Shut down")
		os.Exit(1)
	}
}
