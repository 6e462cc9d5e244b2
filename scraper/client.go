// Package scraper is the transport layer: it fetches listing markup with
// browser-like headers and TLS fingerprint, bounded timeouts, retries, and
// a fixed inter-request delay. It never interprets the markup beyond a
// blocked-page sanity check.
package scraper

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	tls "github.com/refraction-networking/utls"
	"golang.org/x/time/rate"

	"reviewscout/config"
	"reviewscout/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Computed once at init time and reused for every
// connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2, which Go's http.Transport cannot handle
	// over a utls connection.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Client fetches pages sequentially. The limiter enforces the fixed delay
// between consecutive requests that stands in for a scheduler.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient builds a fetch client from configuration.
func NewClient(cfg config.ScraperConfig) *Client {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("scraper: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}

	rc := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.FetchDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("User-Agent", chromeUA).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("Accept-Encoding", "identity")

	return &Client{
		http:    rc,
		limiter: rate.NewLimiter(rate.Every(cfg.FetchDelay), 1),
	}
}

// Fetch retrieves a URL and returns its body. Errors carry a code so the
// caller can tell network failures, HTTP status failures, and bot walls
// apart; all three mean "skip this source", never "abort the run".
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", models.NewScrapeError(models.ErrCodeNetwork, "canceled before fetch of "+url, err)
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeNetwork, "fetch "+url, err)
	}
	if resp.StatusCode() >= 400 {
		return "", models.NewScrapeError(models.ErrCodeHTTPStatus,
			fmt.Sprintf("HTTP %d for %s", resp.StatusCode(), url), nil)
	}

	body := resp.String()
	if looksBlocked(body) {
		return "", models.NewScrapeError(models.ErrCodeBlockedPage,
			"response looks like a bot wall or empty app shell: "+url, nil)
	}
	return body, nil
}

var blockMarkers = []string{
	"captcha",
	"access denied",
	"pardon our interruption",
	"verify you are a human",
}

// looksBlocked flags bodies that are a bot wall or a JS app shell with no
// server-rendered content. Parsing such a page would silently yield zero
// reviews; failing the fetch keeps the per-source error accounting honest.
func looksBlocked(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range blockMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	// A large page with almost no visible text is an empty shell.
	return len(body) > 2048 && len(visibleText(body)) < 64
}
