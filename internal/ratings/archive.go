package ratings

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveConfig locates the S3-compatible bucket that receives log snapshots.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// Prefix is an optional key prefix inside the bucket
	// (e.g. "study/ratings").
	Prefix string
	UseSSL bool
}

// ObjectInfo is a lightweight view of one archived object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archiver uploads rating logs to MinIO or any S3-compatible store.
type Archiver struct {
	cfg    ArchiveConfig
	client *minio.Client
}

func NewArchiver(cfg ArchiveConfig) *Archiver {
	return &Archiver{cfg: cfg}
}

func (a *Archiver) init(ctx context.Context) error {
	if a.client != nil {
		return nil
	}
	if a.cfg.Endpoint == "" || a.cfg.Bucket == "" {
		return fmt.Errorf("archive endpoint and bucket must be configured")
	}

	client, err := minio.New(a.cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(a.cfg.AccessKey, a.cfg.SecretKey, ""),
		Secure: a.cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create Minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, a.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", a.cfg.Bucket)
	}

	a.client = client
	return nil
}

// ObjectName is the key under which a snapshot taken at t is stored.
func (a *Archiver) ObjectName(t time.Time) string {
	name := fmt.Sprintf("ratings-%s.tsv", t.UTC().Format("2006-01-02-15-04"))
	if a.cfg.Prefix != "" {
		return path.Join(a.cfg.Prefix, name)
	}
	return name
}

// Upload stores the log file at logPath as a snapshot taken now.
func (a *Archiver) Upload(ctx context.Context, logPath string, now time.Time) (ObjectInfo, error) {
	if err := a.init(ctx); err != nil {
		return ObjectInfo{}, err
	}

	f, err := os.Open(logPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to open rating log: %w", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to stat rating log: %w", err)
	}

	objectName := a.ObjectName(now)
	info, err := a.client.PutObject(ctx, a.cfg.Bucket, objectName, f, st.Size(), minio.PutObjectOptions{
		ContentType: "text/tab-separated-values",
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return ObjectInfo{Key: info.Key, Size: info.Size, LastModified: now}, nil
}

// List returns up to limit archived snapshots (all when limit <= 0).
func (a *Archiver) List(ctx context.Context, limit int) ([]ObjectInfo, error) {
	if err := a.init(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    a.cfg.Prefix,
		Recursive: true,
	}

	var results []ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("error listing object: %w", obj.Err)
		}
		results = append(results, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Remove deletes one archived snapshot.
func (a *Archiver) Remove(ctx context.Context, key string) error {
	if err := a.init(ctx); err != nil {
		return err
	}
	if err := a.client.RemoveObject(ctx, a.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", key, err)
	}
	return nil
}
