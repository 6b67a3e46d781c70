package suite

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
)

const (
	containerTTL = 120 // seconds before docker hard-kills the container
	maxWait      = 120 * time.Second
)

const (
	redisImage = "redis"
	redisTag   = "7-alpine"
	redisPort  = config.DefaultRedisPort + "/tcp"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	// Redis is the connection config of the container, as the app would read it.
	Redis   config.Redis
	Storage *redis.Client
}

// New starts a throwaway Redis container for the test and returns a flushed
// client to it. The test is skipped in -short mode or when no Docker daemon is
// reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWait)
	t.Cleanup(cancel)

	pool := newPool(t)
	resource := runRedis(t, pool)

	host, port, err := net.SplitHostPort(resource.GetHostPort(redisPort))
	if err != nil {
		t.Fatalf("could not parse container address: %v", err)
	}

	redisConf := config.Redis{Host: host, Port: port}

	var client *redis.Client
	if err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: redisConf.GetRedisAddr()})
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Redis:   redisConf,
		Storage: client,
	}
}

func newPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	pool.MaxWait = maxWait

	return pool
}

func runRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository:   redisImage,
		Tag:          redisTag,
		ExposedPorts: []string{redisPort},
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(containerTTL)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	return resource
}
