package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/csheth/chronicle/internal/streak"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	store := NewFileStore(path)
	ctx := context.Background()

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if got != (streak.State{}) {
		t.Fatalf("missing file should load zero state, got %+v", got)
	}

	want := streak.State{XP: 42, Streak: 3, LastWrite: streak.Date{Year: 2024, Month: time.May, Day: 9}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestFileStoreDefaultsAbsentAndMalformedKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	payload := `{"chronicle_xp":"17","chronicle_streak":"soon","chronicle_lastWriteDate":"not-a-date"}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.XP != 17 || got.Streak != 0 || !got.LastWrite.IsZero() {
		t.Fatalf("unexpected decoded state: %+v", got)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMemoryStoreCountsSaves(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(streak.State{XP: 1})
	ctx := context.Background()
	if err := store.Save(ctx, streak.State{XP: 2, Streak: 1}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _ := store.Load(ctx)
	if got.XP != 2 || got.Streak != 1 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if store.Saves() != 1 {
		t.Fatalf("Saves() = %d, want 1", store.Saves())
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	t.Parallel()

	if _, ok := Open("redis://localhost:6379/0", "chronicle").(*RedisStore); !ok {
		t.Fatal("redis URL should open a RedisStore")
	}
	if _, ok := Open("memory", "").(*MemoryStore); !ok {
		t.Fatal("memory should open a MemoryStore")
	}
	if fs, ok := Open("/tmp/progress.json", "").(*FileStore); !ok || fs.Path() != "/tmp/progress.json" {
		t.Fatal("paths should open a FileStore")
	}
}

func TestRedisStoreAgainstLiveServer(t *testing.T) {
	url := os.Getenv("CHRONICLE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CHRONICLE_TEST_REDIS_URL not set")
	}
	client := DialRedis(url)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "chronicle-test-" + time.Now().Format("150405.000000")
	store := NewRedisStore(client, prefix)
	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	t.Cleanup(func() {
		client.Del(ctx, prefix+":"+KeyXP, prefix+":"+KeyStreak, prefix+":"+KeyLastWrite)
	})

	empty, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if empty != (streak.State{}) {
		t.Fatalf("absent keys should load zero state, got %+v", empty)
	}

	want := streak.State{XP: 9, Streak: 2, LastWrite: streak.Date{Year: 2024, Month: time.January, Day: 2}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}
