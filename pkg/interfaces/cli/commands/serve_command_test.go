package commands

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/infrastructure/config"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	"github.com/vsinha/partcounter/pkg/infrastructure/repositories/sqlite"
)

// freeAddr reserves a loopback port and releases it for the server under test
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	addr := l.Addr().String()
	if err := l.Close(); err != nil {
		t.Fatalf("Failed to release port: %v", err)
	}
	return addr
}

func waitForHealthy(t *testing.T, addr string, done <-chan error) {
	t.Helper()
	client := &http.Client{Timeout: 200 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case err := <-done:
			t.Fatalf("server exited before becoming healthy: %v", err)
		default:
		}
		resp, err := client.Get("http://" + addr + "/healthcheck")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server at %s did not become healthy", addr)
}

func TestServeCommand_SeedsSQLiteAndStops(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	addr := freeAddr(t)
	cfg := config.Config{
		HTTPAddr:        addr,
		DBPath:          dbPath,
		Seed:            true,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- NewServeCommand(cfg, logger.Nop()).Execute(ctx)
	}()

	waitForHealthy(t, addr, done)

	resp, err := http.Get("http://" + addr + "/api/parts")
	if err != nil {
		t.Fatalf("GET /api/parts failed: %v", err)
	}
	var listed []struct {
		Name string `json:"name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to decode parts: %v", err)
	}
	if len(listed) != 4 {
		t.Errorf("Expected 4 parts served, got %+v", listed)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}

	repo, err := sqlite.Open(dbPath, logger.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	parts, err := repo.ListParts(context.Background())
	if err != nil {
		t.Fatalf("ListParts failed: %v", err)
	}
	if len(parts) != 4 {
		t.Errorf("Expected the default seed's 4 parts, got %d", len(parts))
	}

	complexes, err := repo.ListComplexes(context.Background())
	if err != nil {
		t.Fatalf("ListComplexes failed: %v", err)
	}
	if len(complexes) != 2 {
		t.Fatalf("Expected 2 seeded complexes, got %+v", complexes)
	}
	b := complexes[1]
	if b.Name != "Playground B" || len(b.Composition) != 4 {
		t.Fatalf("Unexpected Playground B: %+v", b)
	}
	names := make(map[entities.PartID]string, len(parts))
	for _, p := range parts {
		names[p.ID] = p.Name
	}
	expected := []struct {
		name string
		qty  entities.Quantity
	}{{"Bolt", 80}, {"Nut", 80}, {"Panel", 20}, {"Rope", 15}}
	for i, want := range expected {
		got := b.Composition[i]
		if names[got.PartID] != want.name || got.Quantity != want.qty {
			t.Errorf("entry %d: expected %s x%d, got %s x%d", i, want.name, want.qty, names[got.PartID], got.Quantity)
		}
	}
}

func TestServeCommand_SecondStartSkipsSeed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	for run := 0; run < 2; run++ {
		addr := freeAddr(t)
		cfg := config.Config{
			HTTPAddr:        addr,
			DBPath:          dbPath,
			Seed:            true,
			ShutdownTimeout: time.Second,
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- NewServeCommand(cfg, logger.Nop()).Execute(ctx)
		}()
		waitForHealthy(t, addr, done)
		cancel()
		if err := <-done; err != nil {
			t.Fatalf("run %d: Execute failed: %v", run, err)
		}
	}

	repo, err := sqlite.Open(dbPath, logger.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	parts, err := repo.ListParts(context.Background())
	if err != nil {
		t.Fatalf("ListParts failed: %v", err)
	}
	if len(parts) != 4 {
		t.Errorf("Expected seed applied once (4 parts), got %d", len(parts))
	}
}

func TestServeCommand_StoreKind(t *testing.T) {
	if kind := NewServeCommand(config.Config{}, nil).storeKind(); kind != "memory" {
		t.Errorf("Expected memory store, got %s", kind)
	}
	if kind := NewServeCommand(config.Config{DBPath: "x.db"}, nil).storeKind(); kind != "sqlite" {
		t.Errorf("Expected sqlite store, got %s", kind)
	}
}

func TestServeCommand_BadSeedFile(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:        "127.0.0.1:0",
		Seed:            true,
		SeedFile:        filepath.Join(t.TempDir(), "missing.yaml"),
		ShutdownTimeout: time.Second,
	}
	if err := NewServeCommand(cfg, logger.Nop()).Execute(context.Background()); err == nil {
		t.Error("Expected error for missing seed file")
	}
}
