package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// VersionsResponse represents the version listing returned by the registry
type VersionsResponse struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// HTTPStore is an HTTP client for a remote model registry
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPStore creates a new registry client
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPStore) Name() string { return "http" }

// Versions lists model versions via GET /models/{name}/versions
func (s *HTTPStore) Versions(ctx context.Context, modelName string) ([]string, error) {
	if err := validateName("model name", modelName); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/models/%s/versions", s.baseURL, url.PathEscape(modelName))

	body, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var result VersionsResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Versions, nil
}

// Fetch downloads one file via GET /models/{name}/versions/{version}/artifacts/{file}
func (s *HTTPStore) Fetch(ctx context.Context, modelName, version, file string) ([]byte, error) {
	if err := validateRef(modelName, version, file); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/models/%s/versions/%s/artifacts/%s", s.baseURL,
		url.PathEscape(modelName), url.PathEscape(version), url.PathEscape(file))

	body, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

func (s *HTTPStore) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", model.ErrArtifactNotFound, endpoint)
	default:
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("registry returned status %d: %s", resp.StatusCode, string(respBody))
	}
}
