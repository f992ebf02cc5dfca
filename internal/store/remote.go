package store

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteStore mirrors JSON payloads to a remote endpoint, keyed by filename.
// All calls are best effort: the store logs failures and stays local-only.
type RemoteStore struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRemoteStore creates a remote mirror client with optional proxy support.
func NewRemoteStore(baseURL, apiKey, proxyURL string) *RemoteStore {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RemoteStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Put uploads data under name.
func (r *RemoteStore) Put(name string, data []byte) error {
	endpoint := fmt.Sprintf("%s/files/%s", r.BaseURL, url.PathEscape(name))
	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("remote put: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("remote put: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Get fetches the payload stored under name.
func (r *RemoteStore) Get(name string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/files/%s", r.BaseURL, url.PathEscape(name))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote get: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
