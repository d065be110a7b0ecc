package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Containers are started once per test binary and shared by every suite in
// it. They are skipped in -short mode.

type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	endpoint  string
	err       error
}

var (
	redisShared    sharedContainer
	postgresShared sharedContainer
	mongoShared    sharedContainer
)

func (s *sharedContainer) get(t *testing.T, start func(ctx context.Context) (testcontainers.Container, string, error)) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in -short mode")
	}

	s.once.Do(func() {
		// Give generous timeout in CI environments
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		s.container, s.endpoint, s.err = start(ctx)
	})
	if s.err != nil {
		t.Skipf("container unavailable: %v", s.err)
	}
	return s.endpoint
}

// GetRedisAddress returns host:port of a shared Redis container.
func GetRedisAddress(t *testing.T) string {
	return redisShared.get(t, func(ctx context.Context) (testcontainers.Container, string, error) {
		redisC, err := testcontainers.Run(
			ctx, "redis:7",
			testcontainers.WithExposedPorts("6379/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			),
		)
		if err != nil {
			return nil, "", err
		}
		endpoint, err := redisC.Endpoint(ctx, "")
		if err != nil {
			_ = redisC.Terminate(context.Background()) // best-effort cleanup
			return nil, "", err
		}
		return redisC, endpoint, nil
	})
}

// GetPostgresDSN returns a pgx DSN of a shared PostgreSQL container.
func GetPostgresDSN(t *testing.T) string {
	return postgresShared.get(t, func(ctx context.Context) (testcontainers.Container, string, error) {
		postgresC, err := testcontainers.Run(
			ctx, "postgres:16",
			testcontainers.WithExposedPorts("5432/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForAll(
					wait.ForListeningPort("5432/tcp"),
					wait.ForLog("ready to accept connections"),
					// Actively verify SQL connectivity with a DSN built from the mapped host:port
					wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
						return fmt.Sprintf("postgres://featuretour:featuretour@%s:%s/featuretour_test?sslmode=disable", host, port.Port())
					}).WithQuery("SELECT 1"),
				).WithDeadline(2*time.Minute),
			),
			testcontainers.WithEnv(map[string]string{
				"POSTGRES_USER":     "featuretour",
				"POSTGRES_PASSWORD": "featuretour",
				"POSTGRES_DB":       "featuretour_test",
			}),
		)
		if err != nil {
			return nil, "", err
		}
		endpoint, err := postgresC.Endpoint(ctx, "")
		if err != nil {
			_ = postgresC.Terminate(context.Background()) // best-effort cleanup
			return nil, "", err
		}
		return postgresC, fmt.Sprintf("postgres://featuretour:featuretour@%s/featuretour_test?sslmode=disable", endpoint), nil
	})
}

// GetMongoURI returns a mongodb:// URI of a shared MongoDB container.
func GetMongoURI(t *testing.T) string {
	return mongoShared.get(t, func(ctx context.Context) (testcontainers.Container, string, error) {
		mongoC, err := testcontainers.Run(
			ctx, "mongo:7",
			testcontainers.WithExposedPorts("27017/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			),
		)
		if err != nil {
			return nil, "", err
		}
		endpoint, err := mongoC.Endpoint(ctx, "")
		if err != nil {
			_ = mongoC.Terminate(context.Background()) // best-effort cleanup
			return nil, "", err
		}
		return mongoC, fmt.Sprintf("mongodb://%s", endpoint), nil
	})
}
