package pennywise

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// diskCache caches HTTP responses on disk. The cache key includes today's
// date, so every entry expires at midnight; exchange rates are daily data
// and one fetch per day is enough.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL)
	key = fmt.Sprintf("pw-%x", sha1.Sum([]byte(key)))

	if resp, err := c.read(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).
		Str("status", resp.Status).Msg("http fetch")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.write(key, resp); err != nil {
		log.Warn().Err(err).Msg("rate cache write failed, ignored")
	}
	return resp, nil
}

func (c *diskCache) read(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) write(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0o600)
}

// cachedClient returns an HTTP client whose responses expire daily.
func cachedClient() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}

// getJSON performs a GET request and unmarshals the JSON response into data.
func getJSON(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
