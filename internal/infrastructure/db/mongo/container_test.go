package mongo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mongoPort = "27017/tcp"

// startMongo runs a throwaway MongoDB container and returns its connection
// URI. Skipped in short mode and when no container runtime is reachable.
func startMongo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{mongoPort},
			WaitingFor:   wait.ForListeningPort(mongoPort),
		},
		Started: true,
	})
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("terminate mongo container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

// openTestStore connects to uri using a database unique to the test.
func openTestStore(t *testing.T, uri string) *CollectionStore {
	t.Helper()

	db := "chirper_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	s, err := Open(context.Background(), Config{URI: uri, Database: db, Timeout: 30 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = s.col.Database().Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}
