package resolver

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/utils/fileops"
)

// S3Config configures an artifact repository hosted in an S3 bucket
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string // key prefix the Maven layout starts under
	UseSSL    bool
}

// S3Repository fetches archives from an S3-compatible bucket into the local
// repository layout
type S3Repository struct {
	client  *minio.Client
	bucket  string
	prefix  string
	local   *LocalRepository
	fileOps *fileops.FileOps
}

// NewS3Repository validates cfg and creates the bucket client
func NewS3Repository(cfg S3Config, local *LocalRepository) (*S3Repository, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Repository{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		local:   local,
		fileOps: fileops.NewFileOps(),
	}, nil
}

// Resolve downloads the object for coord and returns its local path
func (r *S3Repository) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	if IsMetaVersion(coord.Version) {
		version, err := r.metadataVersion(ctx, coord)
		if err != nil {
			return "", err
		}
		coord = coord.WithVersion(version)
	}

	key := r.key(coord.Path())
	object, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", r.wrap(key, err)
	}
	defer object.Close()

	// GetObject is lazy; Stat surfaces a missing key before anything is written
	if _, err := object.Stat(); err != nil {
		return "", r.wrap(key, err)
	}

	dest := r.local.Path(coord)
	if err := r.fileOps.WriteStream(dest, object, fileops.FilePerm); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", coord, err)
	}

	return dest, nil
}

// metadataVersion pins a meta version using maven-metadata.xml in the bucket
func (r *S3Repository) metadataVersion(ctx context.Context, coord models.Coordinate) (string, error) {
	key := r.key(path.Join(coord.Dir(), metadataFile))
	object, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", r.wrap(key, err)
	}
	defer object.Close()

	if _, err := object.Stat(); err != nil {
		return "", r.wrap(key, err)
	}

	return versionFromMetadata(object, coord.Version)
}

func (r *S3Repository) key(relPath string) string {
	if r.prefix == "" {
		return relPath
	}
	return r.prefix + "/" + relPath
}

func (r *S3Repository) wrap(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, r.bucket, key)
	}
	return fmt.Errorf("failed to fetch s3://%s/%s: %w", r.bucket, key, err)
}

// String describes the repository for logs
func (r *S3Repository) String() string {
	return "s3 repository s3://" + path.Join(r.bucket, r.prefix)
}
