package resolver

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/utils/fileops"
)

// DefaultHTTPTimeout bounds a single repository request
const DefaultHTTPTimeout = 60 * time.Second

// RemoteRepository downloads archives from an HTTP repository into the
// local repository layout
type RemoteRepository struct {
	baseURL string
	client  *http.Client
	local   *LocalRepository
	fileOps *fileops.FileOps
}

// NewRemoteRepository creates a resolver for baseURL that stores downloads in local.
// A nil client uses a client with DefaultHTTPTimeout.
func NewRemoteRepository(baseURL string, local *LocalRepository, client *http.Client) *RemoteRepository {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &RemoteRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		local:   local,
		fileOps: fileops.NewFileOps(),
	}
}

// Resolve downloads the archive for coord and returns its local path
func (r *RemoteRepository) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	if IsMetaVersion(coord.Version) {
		version, err := r.metadataVersion(ctx, coord)
		if err != nil {
			return "", err
		}
		coord = coord.WithVersion(version)
	}

	resp, err := r.get(ctx, coord.Path())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	dest := r.local.Path(coord)
	if err := r.fileOps.WriteStream(dest, resp.Body, fileops.FilePerm); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", coord, err)
	}

	return dest, nil
}

// metadataVersion pins a meta version using the remote maven-metadata.xml
func (r *RemoteRepository) metadataVersion(ctx context.Context, coord models.Coordinate) (string, error) {
	resp, err := r.get(ctx, path.Join(coord.Dir(), metadataFile))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return versionFromMetadata(resp.Body, coord.Version)
}

// get issues a GET for a repository-relative path; the caller closes the body
func (r *RemoteRepository) get(ctx context.Context, relPath string) (*http.Response, error) {
	url := r.baseURL + "/" + relPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}
}

// String describes the repository for logs
func (r *RemoteRepository) String() string {
	return "remote repository " + r.baseURL
}
