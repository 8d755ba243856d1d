package container

import (
	"sync"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/config"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/broker"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/memory"
)

// app-level container sharing constructed infrastructure across packages.
// router.InitModules wires modules from these singletons; unset entries
// disable the feature that depends on them.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	publisher   *broker.Publisher
	esClient    *elasticsearch.Client
	memStore    *memory.Store
	memOnce     sync.Once
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger)       { logger = l }
func GetLogger() *logrus.Logger        { return logger }
func SetPGPool(p *pgxpool.Pool)        { pgPool = p }
func GetPGPool() *pgxpool.Pool         { return pgPool }
func SetRedis(r *redis.Client)         { redisClient = r }
func GetRedis() *redis.Client          { return redisClient }
func SetGCS(s *storage.Client)         { gcsClient = s }
func GetGCS() *storage.Client          { return gcsClient }
func SetPublisher(p *broker.Publisher) { publisher = p }
func GetPublisher() *broker.Publisher  { return publisher }
func SetES(c *elasticsearch.Client)    { esClient = c }
func GetES() *elasticsearch.Client     { return esClient }

// GetMemoryStore returns the process-wide in-memory store, creating it on first use.
func GetMemoryStore() *memory.Store {
	memOnce.Do(func() { memStore = memory.NewStore() })
	return memStore
}
