package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 5
	BURST_RATE_LIMIT_PER_SECOND     = 10
	RATE_LIMITER_IDLE_TTL           = 10 * time.Minute //per-ip limiters unused this long are dropped

	//classification
	KeyPhraseLimit      = 5
	QuestionPhraseLimit = 3

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobTimeout                      = 60 * time.Second

	//serverTimeouts
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads
	MaxUploadSize = 32 << 20 //32mb

	//job requests buffer limit
	BufferLimit = 100

	//pdf page extraction guard
	PageExtractTimeout = 10 * time.Second
	MaxPageDecodes     = 8 //page decodes in flight across all documents, stalled ones included

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisRecordStore  = 0
	RedisHistoryStore = 1
	RedisJobStore     = 2

	//redis timeouts
	RedisPingTimeout  = 3 * time.Second
	RedisRecordTTL    = 7 * 24 * time.Hour
	RedisHistoryTTL   = 7 * 24 * time.Hour
	RedisJobStoreTTL  = 24 * time.Hour
	HistoryDepth      = 20
	RedisReadTimeout  = 30 * time.Second
	RedisWriteTimeout = 30 * time.Second

	//kafka
	KafkaActionTopic    = "document-actions"
	KafkaClientID       = "docrouter"
	KafkaPublishTimeout = 5 * time.Second

	//store backends
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)
