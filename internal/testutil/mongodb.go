//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// mongoImage is the server the audit log is tested against.
const mongoImage = "mongo:7.0"

// maxDBNamePrefix leaves room for the unique suffix under MongoDB's 64 byte limit.
const maxDBNamePrefix = 50

var shared struct {
	sync.RWMutex
	uri string
}

// RunWithMongoDB starts one MongoDB container for a package's tests, runs
// them and terminates the container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithMongoDB(m))
//	}
func RunWithMongoDB(m *testing.M) int {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start MongoDB container: %v\n", err)
		return 1
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		fmt.Fprintf(os.Stderr, "MongoDB connection string: %v\n", err)
		return 1
	}

	shared.Lock()
	shared.uri = uri
	shared.Unlock()

	code := m.Run()

	if err := testcontainers.TerminateContainer(container); err != nil {
		fmt.Fprintf(os.Stderr, "warning: terminate MongoDB container: %v\n", err)
	}
	return code
}

// MongoURI returns the URI of the container started by RunWithMongoDB.
func MongoURI(t testing.TB) string {
	t.Helper()
	shared.RLock()
	defer shared.RUnlock()
	if shared.uri == "" {
		t.Fatal("MongoDB container not started; call RunWithMongoDB from TestMain")
	}
	return shared.uri
}

// DatabaseName returns a database name unique to t. MongoDB rejects
// '/', '\', '.', ' ', '"' and '$' in names.
func DatabaseName(t testing.TB) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			return '_'
		}
		return r
	}, t.Name())
	if len(name) > maxDBNamePrefix {
		name = name[:maxDBNamePrefix]
	}
	return name + "_" + uuid.NewString()[:8]
}
