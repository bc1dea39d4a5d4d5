package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresPort nat.Port = "5432/tcp"

// PostgresContainer is a disposable postgres server for integration tests and local development
type PostgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// StartPostgres starts a postgres container and waits until it accepts connections
func StartPostgres(ctx context.Context, image string) (*PostgresContainer, error) {
	if image == "" {
		image = "postgres:16-alpine"
	}

	pc := &PostgresContainer{
		Database: "recipes",
		User:     "recipes",
		Password: "recipes",
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(postgresPort)},
			Env: map[string]string{
				"POSTGRES_DB":       pc.Database,
				"POSTGRES_USER":     pc.User,
				"POSTGRES_PASSWORD": pc.Password,
			},
			// postgres logs readiness twice, once for the init server
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	pc.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		_ = pc.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		_ = pc.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	pc.Host = host
	pc.Port = port.Port()
	return pc, nil
}

// Apply points cfg at the container
func (pc *PostgresContainer) Apply(cfg *config.Config) {
	cfg.DBType = "postgres"
	cfg.DBHost = pc.Host
	cfg.DBPort = pc.Port
	cfg.DBDatabase = pc.Database
	cfg.DBUser = pc.User
	cfg.DBPassword = pc.Password
}

// Terminate stops and removes the container
func (pc *PostgresContainer) Terminate(ctx context.Context) error {
	if pc.Container == nil {
		return nil
	}
	return pc.Container.Terminate(ctx)
}
