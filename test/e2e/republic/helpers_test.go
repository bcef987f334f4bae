//go:build e2e

package republic_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/republichq/republic/pkg/republicsdk"
)

/*
 * Helpers for end-to-end tests: the service runs from its Docker image, on
 * SQLite inside the container or against a PostgreSQL container on a shared
 * network. Run with: go test -tags e2e ./test/e2e/...
 */

const (
	testImageName = "republic-test:latest"
	secretKey     = "e2e-secret-key-0123456789"
)

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Republic Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Republic Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/republic/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// baseEnv relaxes the rate limits, since tests fire many requests from one
// address. ENV=dev keeps the session cookie usable over plain HTTP.
func baseEnv() map[string]string {
	return map[string]string{
		"SECRET_KEY":                  secretKey,
		"ENV":                         "dev",
		"LOG_LEVEL":                   "info",
		"LOG_FORMAT":                  "json",
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_SESSION_REQUESTS":  "1000",
		"RATELIMIT_SESSION_BURST":     "1000",
	}
}

// startRepublic runs the service container and returns its base URL.
func startRepublic(t *testing.T, env map[string]string, networks ...string) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			Networks:     networks,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// startWithSQLite runs the service on its bundled SQLite file.
func startWithSQLite(t *testing.T, env map[string]string) string {
	t.Helper()
	return startRepublic(t, env)
}

// startWithPostgres starts PostgreSQL under the alias "db" and points the
// service at it through DATABASE_URL.
func startWithPostgres(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nw.Remove(ctx) })

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "republic",
				"POSTGRES_PASSWORD": "republic",
				"POSTGRES_DB":       "republic",
			},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {"db"}},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	env["DATABASE_URL"] = "postgres://republic:republic@db:5432/republic?sslmode=disable"
	return startRepublic(t, env, nw.Name)
}

func assertHealthy(t *testing.T, health *republicsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
