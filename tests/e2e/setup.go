//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"workshop-booking/cmd/bootstrap"
	"workshop-booking/cmd/bootstrap/components"
	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/db"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/jwt"
	commonhttp "workshop-booking/tests/common/httptest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (c ContainerInfo) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port.Port())
}

// ------------------------------------------------------------
// Per-suite environment
// ------------------------------------------------------------

// Environment is one running app and the config it was built from.
type Environment struct {
	Router *gin.Engine
	Config config.Config
	app    *fx.App
}

func (e *Environment) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.app.Stop(ctx); err != nil {
		slog.Warn("Failed to stop fx app", "error", err.Error())
	}
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)

	info, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "Failed to read redis container address")
	return info
}

// newTestConfig gives each suite its own redis key prefix.
func newTestConfig(redisInfo ContainerInfo, backendURL string) config.Config {
	cfg := config.NewTestConfig()
	cfg.Backend.BaseURL = backendURL
	cfg.Backend.ResyncAfterMutation = true
	cfg.Redis.Addr = redisInfo.Addr()
	cfg.Redis.KeyPrefix = "e2e_" + strings.ReplaceAll(uuid.New().String(), "-", "") + ":"
	return cfg
}

// ------------------------------------------------------------
// App construction
// ------------------------------------------------------------

// StartApp builds the production module graph against cfg. The AMQP sink
// is left out; its config is empty in tests anyway.
func StartApp(t *testing.T, cfg config.Config) *Environment {
	t.Helper()

	var router *gin.Engine

	app := fx.New(
		fx.Module("testconfig", fx.Provide(func() config.Config { return cfg })),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "Failed to start fx app")
	require.NotNil(t, router, "Router was not populated")

	return &Environment{Router: router, Config: cfg, app: app}
}

// ------------------------------------------------------------
// Redis container, started once per test binary
// ------------------------------------------------------------
func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			).WithDeadline(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		// ryuk reaps the container when the test binary exits
		var err error
		redisTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "Failed to start redis container")
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Env     *Environment
	Backend *FakeBackend
	Redis   *redis.Client

	redisInfo ContainerInfo
	jwt       *jwt.Service
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	s.redisInfo = startContainers(t)
	s.Backend = NewFakeBackend()

	cfg := newTestConfig(s.redisInfo, s.Backend.URL())
	client, cleanup, err := db.ConnectRedis(context.Background(), cfg.Redis)
	require.NoError(t, err, "Failed to connect to redis")
	s.Redis = client
	t.Cleanup(cleanup)

	s.Env = StartApp(t, cfg)
	s.jwt = bootstrap.NewJWTService(cfg)
}

func (s *SharedSuite) TearDownSuite() {
	if s.Env != nil {
		s.Env.Stop()
	}
	if s.Backend != nil {
		s.Backend.Close()
	}
}

// SetupSubTest clears the backend and the engine's tracked set.
func (s *SharedSuite) SetupSubTest() {
	s.Backend.Reset()
	s.ClearOverrides()
	s.SyncBookings()
}

// Restart replaces the running app with a fresh one on the same config,
// dropping everything the previous process held in memory.
func (s *SharedSuite) Restart() {
	s.Env.Stop()
	s.Env = StartApp(s.T(), s.Env.Config)
}

func (s *SharedSuite) ClearOverrides() {
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, s.Env.Config.Redis.KeyPrefix+"*").Result()
	require.NoError(s.T(), err)
	if len(keys) > 0 {
		require.NoError(s.T(), s.Redis.Del(ctx, keys...).Err())
	}
}

// SyncBookings reloads the tracked set from the fake backend through the API.
func (s *SharedSuite) SyncBookings() {
	w := commonhttp.PerformRequest(s.T(), s.Env.Router, http.MethodPost, "/api/bookings/sync", nil, s.Token(booking.ActorWorkshop))
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
}

func (s *SharedSuite) Token(actor booking.ActorRole) string {
	token, err := s.jwt.GenerateToken(uuid.New(), actor.String())
	require.NoError(s.T(), err)
	return token
}
