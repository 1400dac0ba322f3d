package discogs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Credentials authenticate requests. The value is immutable and is passed
// explicitly to every fetch.
type Credentials struct {
	Token string
}

// Request describes one GET against the API.
type Request struct {
	URL         string // Absolute URL without credentials
	Credentials Credentials
	UserAgent   string
}

// Response is a status code plus the decoded JSON body.
//
// Body is nil when the response had no body, or when a non-2xx body could
// not be decoded.
type Response struct {
	StatusCode int
	Body       any
}

// Fetcher performs HTTP requests on behalf of the client.
//
// Implementations must report network failures as *TransportError and
// never convert them into a status code. A nil error comes with a non-nil
// response; the client reports a nil response as *TransportError.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// HTTPFetcher is the default Fetcher backed by an *http.Client.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher. A nil client means http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch sends the request with the token as a query parameter.
func (f *HTTPFetcher) Fetch(ctx context.Context, r Request) (*Response, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("discogs: invalid url %q: %w", r.URL, err)
	}
	q := u.Query()
	q.Set("token", r.Credentials.Token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("discogs: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, token included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &TransportError{URL: r.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: r.URL, Err: fmt.Errorf("reading body: %w", err)}
	}

	out := &Response{StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	body, err := decodeJSON(raw)
	if err != nil {
		if isSuccess(resp.StatusCode) {
			return nil, &FetchError{StatusCode: resp.StatusCode, URL: r.URL, Err: fmt.Errorf("decoding body: %w", err)}
		}
		return out, nil
	}
	out.Body = body
	return out, nil
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
