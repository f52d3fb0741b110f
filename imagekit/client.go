// Package imagekit is a minimal client for the ImageKit media REST API,
// covering the upload call the catalog admin uses and the public config the
// storefront frontend needs to render transformed URLs.
package imagekit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultUploadURL is ImageKit's upload API endpoint.
const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// UploadFolder is where catalog images land; ImageKit creates it on first use.
const UploadFolder = "/products"

// Config holds the ImageKit credentials. All three values come from the
// dashboard; the private key never leaves the backend.
type Config struct {
	PrivateKey  string
	PublicKey   string
	URLEndpoint string

	// UploadURL overrides the upload endpoint. Default: DefaultUploadURL.
	UploadURL string
}

// Configured reports whether all required credentials are present.
func (c Config) Configured() bool {
	return c.PrivateKey != "" && c.PublicKey != "" && c.URLEndpoint != ""
}

func (c Config) uploadURL() string {
	if c.UploadURL != "" {
		return c.UploadURL
	}
	return DefaultUploadURL
}

// UploadResult is the subset of the upload response the API exposes.
type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// PublicConfig is what the frontend needs to build image URLs.
type PublicConfig struct {
	PublicKey   string `json:"publicKey"`
	URLEndpoint string `json:"urlEndpoint"`
}

// Client talks to the ImageKit REST API.
type Client struct {
	config Config
	client *resty.Client
}

// New creates a client. A zero-credential config yields a client whose
// Configured() is false; callers gate uploads on that.
func New(cfg Config) *Client {
	return &Client{
		config: cfg,
		client: resty.New(),
	}
}

// Configured reports whether this client has credentials to upload with.
func (c *Client) Configured() bool {
	return c.config.Configured()
}

// PublicConfig returns the frontend-safe configuration values.
func (c *Client) PublicConfig() PublicConfig {
	return PublicConfig{
		PublicKey:   c.config.PublicKey,
		URLEndpoint: c.config.URLEndpoint,
	}
}

// Upload sends the file to ImageKit with a unique server-side name inside the
// products folder and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("imagekit: client is not configured")
	}

	var result UploadResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.config.PrivateKey, "").
		SetFileReader("file", fileName, file).
		SetFormData(map[string]string{
			"fileName":          fileName,
			"folder":            UploadFolder,
			"useUniqueFileName": "true",
		}).
		SetResult(&result).
		Post(c.config.uploadURL())
	if err != nil {
		return nil, fmt.Errorf("imagekit: upload failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("imagekit: upload failed: status %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	if result.URL == "" {
		return nil, fmt.Errorf("imagekit: upload response missing url")
	}

	return &result, nil
}
