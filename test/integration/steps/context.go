// Package steps contains the godog step definitions for the API feature tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/redis/go-redis/v9"

	"github.com/fabrie/backend/config"
	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/infra/dependency"
	infracache "github.com/fabrie/backend/internal/infra/cache"
	"github.com/fabrie/backend/internal/integration/cache"
	"github.com/fabrie/backend/internal/integration/persistence/model"
	"github.com/fabrie/backend/internal/integration/storage"
	"github.com/fabrie/backend/test/integration/mock"
)

const (
	testKeyPrefix = "test:"
	testBucket    = "fabrie-media"
	testCDN       = "https://cdn.fabrie.test"
)

// testContext holds per-scenario state.
type testContext struct {
	db        *mock.Db
	redis     *redis.Client
	clock     *mock.Time
	s3        *mock.ApiMock
	server    *httptest.Server
	mediaRoot string

	response     *http.Response
	responseBody []byte
	variables    map[string]string
	categoryIDs  map[string]string
}

// InitializeTestSuite prepares shared resources before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		mock.NewDb(model.All()...)
		mock.NewRedis()
	})
}

// InitializeScenario registers every step and the per-scenario lifecycle hooks.
func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.close()
		return ctx, nil
	})

	tc.registerSetupSteps(sc)
	tc.registerRequestSteps(sc)
	tc.registerAssertionSteps(sc)
}

func (tc *testContext) reset() error {
	tc.db = mock.NewDb(model.All()...)
	if err := tc.db.ClearDB(); err != nil {
		return err
	}

	tc.redis = mock.NewRedis()
	if err := mock.ClearRedis(tc.redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}

	mediaRoot, err := os.MkdirTemp("", "fabrie-media-*")
	if err != nil {
		return fmt.Errorf("failed to create media root: %w", err)
	}

	tc.mediaRoot = mediaRoot
	tc.clock = mock.NewTime()
	tc.response = nil
	tc.responseBody = nil
	tc.variables = map[string]string{}
	tc.categoryIDs = map[string]string{}

	return tc.startServer(false)
}

func (tc *testContext) close() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.s3 != nil {
		tc.s3.Close()
		tc.s3 = nil
	}
	if tc.mediaRoot != "" {
		_ = os.RemoveAll(tc.mediaRoot)
	}
}

func (tc *testContext) config() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Environment: "test",
		},
		Redis: config.RedisConfig{
			ReportTTL: time.Minute,
			KeyPrefix: testKeyPrefix,
		},
		Storage: config.StorageConfig{
			Driver:    config.StorageDriverLocal,
			MediaRoot: tc.mediaRoot,
			MediaURL:  "/media/",
		},
		Upload: config.UploadConfig{
			MaxRequestBytes: 2 << 20,
			MaxImageBytes:   1 << 20,
		},
		RateLimit: config.RateLimitConfig{
			MaxRequests: 1000,
			Window:      time.Minute,
		},
	}
}

// startServer builds the application through the injector, storing images locally or on the
// S3 mock.
func (tc *testContext) startServer(useS3 bool) error {
	if tc.server != nil {
		tc.server.Close()
	}

	cfg := tc.config()

	var imageStorage adapter.ImageStorage
	if useS3 {
		tc.s3 = mock.NewApiServer()
		tc.s3.Start()

		cfg.Storage = config.StorageConfig{
			Driver:       config.StorageDriverS3,
			Endpoint:     tc.s3.GetUrl(),
			Region:       "us-east-1",
			AccessKey:    "test",
			SecretKey:    "test",
			Bucket:       testBucket,
			PublicURL:    testCDN,
			UsePathStyle: true,
		}
		client, err := storage.NewS3Client(context.Background(), &cfg.Storage)
		if err != nil {
			return err
		}
		imageStorage = storage.NewS3ImageStorage(client, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	} else {
		imageStorage = storage.NewLocalImageStorage(cfg.Storage.MediaRoot, cfg.Storage.MediaURL)
	}

	redisClient := tc.redis
	injector := dependency.NewInjector(cfg, tc.db.DbConn, dependency.Services{
		ImageStorage: imageStorage,
		ReportCache:  cache.NewRedisReportCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.ReportTTL),
		Clock:        tc.clock,
		CacheHealth: func(ctx context.Context) bool {
			return infracache.HealthCheck(ctx, redisClient)
		},
	})

	tc.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return nil
}
