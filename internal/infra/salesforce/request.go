package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/oauth2"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

const (
	acceptEncoding = "deflate, br"
	maxBodySize    = 8 << 20
)

func newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}

	req.Header.Set("Accept-Encoding", acceptEncoding)
	return req, nil
}

func newJSONRequest(
	ctx context.Context,
	method string,
	url string,
	payload any,
) (*http.Request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := newRequest(ctx, method, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func oauth2Token(token *scheduling.Token) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
}

// client returns the session's HTTP client, or one that authorizes every
// request with token when token is not nil.
func (s *Session) client(token *scheduling.Token) *http.Client {
	if token == nil {
		return s.http
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(oauth2Token(token)),
			Base:   s.http.Transport,
		},
		CheckRedirect: s.http.CheckRedirect,
		Jar:           s.http.Jar,
		Timeout:       s.http.Timeout,
	}
}

// do sends req, authorized with token when given, and returns the decoded
// body of a 2xx response. Any other status is an *APIError.
func (s *Session) do(req *http.Request, token *scheduling.Token) ([]byte, error) {
	resp, err := s.client(token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("salesforce: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	encoding := resp.Header.Get("Content-Encoding")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// the error body is informational; keep what could be read as is
		raw, _ := readLimited(resp.Body)
		body, err := decodeBody(raw, encoding)
		if err != nil {
			body = raw
		}
		return nil, &APIError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	raw, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("salesforce: read %s %s: %w", req.Method, req.URL, err)
	}

	body, err := decodeBody(raw, encoding)
	if err != nil {
		return nil, fmt.Errorf("salesforce: decode %s %s: %w", req.Method, req.URL, err)
	}
	return body, nil
}

// readLimited reads at most maxBodySize bytes and fails with
// ErrBodyTooLarge instead of returning a truncated body.
func readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if len(b) > maxBodySize {
		return b[:maxBodySize], ErrBodyTooLarge
	}
	return b, err
}

// Setting Accept-Encoding by hand turns off the transport's transparent
// decompression, so the encodings we advertise are decoded here.
func decodeBody(raw []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "br":
		return readLimited(brotli.NewReader(bytes.NewReader(raw)))
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return readLimited(zr)
	default:
		return raw, nil
	}
}

func instanceURL(token *scheduling.Token, path string) string {
	return strings.TrimRight(token.InstanceURL, "/") + path
}
