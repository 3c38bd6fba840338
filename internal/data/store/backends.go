package store

import (
	"context"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/data/redisStore"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

// Backends groups every store the service needs.
type Backends struct {
	Records *HistoryRecorder
	Jobs    jobModel.JobStore
	Kind    string
}

// OpenBackends selects the backend from settings. When redis is requested but offline
// at startup it falls back to memory and logs a warning.
func OpenBackends(ctx context.Context, settings config.Settings) Backends {
	logger := logger_i.NewLogger("StoreBackends")

	if settings.StoreBackend == config.StoreBackendRedis {
		opts := redisStore.Options{Addr: settings.RedisAddr, Password: settings.RedisPassword}
		records := GetRedisRecordStore(ctx, opts)
		history := GetRedisHistoryStore(ctx, opts)
		jobs := GetRedisJobStore(ctx, opts)

		if records != nil && history != nil && jobs != nil {
			logger.Info("Using redis stores", "addr", settings.RedisAddr)
			return Backends{Records: WithHistory(records, history), Jobs: jobs, Kind: config.StoreBackendRedis}
		}
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("Redis stores are offline and fallback is disabled")
			return Backends{}
		}
		logger.Warn("Redis stores are offline, falling back to in-memory stores", "addr", settings.RedisAddr)
	}

	logger.Info("Using in-memory stores")
	return Backends{
		Records: WithHistory(InitInMemoryRecordStore(), InitInMemoryHistoryStore()),
		Jobs:    InitInMemoryJobStore(),
		Kind:    config.StoreBackendMemory,
	}
}
