package ratings

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileStoreAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ratings.tsv")
	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}

	ctx := context.Background()
	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r := mustRating(t, fmt.Sprintf("10.0.0.%d", w), int64(1000+i), "worker", "#112233", "#445566", i%101)
				if err := store.Append(ctx, r); err != nil {
					t.Errorf("Append: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, bad, err := ReadLogFile(path)
	if err != nil {
		t.Fatalf("ReadLogFile: %v", err)
	}
	if len(bad) != 0 {
		t.Errorf("found %d malformed lines, first: %v", len(bad), bad[0])
	}
	if len(got) != workers*perWorker {
		t.Errorf("read %d ratings, expected %d", len(got), workers*perWorker)
	}
}

func TestFileStoreReopenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.tsv")
	for i := 0; i < 2; i++ {
		store, err := OpenFileStore(path)
		if err != nil {
			t.Fatalf("OpenFileStore: %v", err)
		}
		if err := store.Append(context.Background(), mustRating(t, "ip", 1, "n", "#000000", "#000000", 0)); err != nil {
			t.Fatalf("Append: %v", err)
		}
		store.Close()
	}
	got, _, err := ReadLogFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("read %d ratings after reopening, expected 2", len(got))
	}
}

func TestFileStoreHonorsCancelledContext(t *testing.T) {
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "ratings.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Append(ctx, mustRating(t, "ip", 1, "n", "#000000", "#000000", 0)); err == nil {
		t.Errorf("Append with cancelled context succeeded")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "postgres"}); err == nil {
		t.Errorf("Open with unknown driver succeeded")
	}
}
