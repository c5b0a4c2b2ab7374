package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// maxBody caps how much of an upstream response is decoded.
const maxBody = 1 << 20

// fetchKind classifies the outcome of an HTTP JSON fetch.
type fetchKind int

const (
	fetchOK        fetchKind = iota
	fetchTransport           // connection failure or timeout
	fetchStatus              // non-2xx response
	fetchDecode              // 2xx but the body is not the expected JSON
)

type fetchResult struct {
	kind   fetchKind
	code   int
	status string // e.g. "401 Unauthorized"
	err    error
}

// fetchJSON performs req and decodes a 2xx body into out.
func fetchJSON(client *http.Client, req *http.Request, out any) fetchResult {
	resp, err := client.Do(req)
	if err != nil {
		return fetchResult{kind: fetchTransport, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return fetchResult{kind: fetchStatus, code: resp.StatusCode, status: resp.Status}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fetchResult{kind: fetchDecode, code: resp.StatusCode, err: err}
	}
	return fetchResult{kind: fetchOK, code: resp.StatusCode}
}

// transportReason describes a transport failure in a few words.
func transportReason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "unreachable: " + err.Error()
}

// joinURL appends path to a base URL, tolerating a trailing slash.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func newGet(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
