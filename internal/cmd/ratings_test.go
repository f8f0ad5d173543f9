package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"colordist/internal/ratings"
)

type fakeRemover struct {
	removed []string
	failOn  string
}

func (f *fakeRemover) Remove(ctx context.Context, key string) error {
	if key == f.failOn {
		return errors.New("access denied")
	}
	f.removed = append(f.removed, key)
	return nil
}

func TestDeleteSnapshots(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		failOn   string
		expected []string
		wantErr  bool
	}{
		{"all", []string{"ratings/a.tsv", "ratings/b.tsv"}, "", []string{"ratings/a.tsv", "ratings/b.tsv"}, false},
		{"stops at failure", []string{"ratings/a.tsv", "ratings/b.tsv", "ratings/c.tsv"}, "ratings/b.tsv", []string{"ratings/a.tsv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRemover{failOn: tt.failOn}
			var out bytes.Buffer
			err := deleteSnapshots(context.Background(), r, tt.keys, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("deleteSnapshots() error = %v, wantErr %v", err, tt.wantErr)
			}
			if strings.Join(r.removed, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("removed = %v, expected %v", r.removed, tt.expected)
			}
			for _, k := range tt.expected {
				if !strings.Contains(out.String(), "Deleted "+k+"\n") {
					t.Errorf("output %q does not report %s", out.String(), k)
				}
			}
		})
	}
}

func TestStoreLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ratings.tsv")
	store, err := ratings.OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	defer store.Close()
	if got := storeLocation(store); got != path {
		t.Errorf("storeLocation(file store) = %q, expected %q", got, path)
	}
}
