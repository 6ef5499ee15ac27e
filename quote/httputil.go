package quote

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/wheel"
	"github.com/rs/zerolog"
)

// diskCache implements a simple disk cache for HTTP responses. Entries are
// keyed by day so they expire every day.
type diskCache struct {
	base   http.RoundTripper
	dir    string
	logger zerolog.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", wheel.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}

// Daily returns a client caching responses in dir for the day. An empty dir
// uses the system temporary directory.
func Daily(dir string, logger zerolog.Logger) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, logger: logger}}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
