//go:build integration

// Package testutil starts the MongoDB and Redis containers used by integration tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mongoImage = "mongo:7.0"
	redisImage = "redis:7.4-alpine"
)

// Container is a started testcontainer and the URI clients connect to.
type Container struct {
	Container testcontainers.Container
	URI       string
}

// Cleanup terminates the container.
func (c *Container) Cleanup(ctx context.Context) error {
	if c == nil || c.Container == nil {
		return nil
	}
	if err := c.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}

// SetupMongoDB starts a MongoDB container.
// Prefer GetSharedMongoDB with TestMain to reuse one container per package.
func SetupMongoDB(ctx context.Context) (*Container, error) {
	mongoContainer, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &Container{Container: mongoContainer, URI: uri}, nil
}

// SetupRedis starts a Redis container and returns its redis:// URI.
func SetupRedis(ctx context.Context) (*Container, error) {
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Redis container: %w", err)
	}

	host, err := redisContainer.Host(ctx)
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Redis host: %w", err)
	}
	port, err := redisContainer.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = redisContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Redis port: %w", err)
	}

	return &Container{
		Container: redisContainer,
		URI:       fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
	}, nil
}
