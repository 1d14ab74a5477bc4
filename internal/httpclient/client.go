// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package httpclient provides the HTTP client used to fetch remote
// sources and vocabularies.
// Its [http.RoundTripper] adds default headers, refuses destinations
// in denied networks and logs every request.
package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/net/idna"

	"codeberg.org/readeck/distiller/configs"
)

// ErrDeniedIP is returned when a destination resolves to a denied network.
var ErrDeniedIP = errors.New("destination ip is denied")

var defaultDialer = net.Dialer{
	Timeout:   15 * time.Second,
	KeepAlive: 30 * time.Second,
}

var defaultTransport = &http.Transport{
	DialContext: defaultDialer.DialContext,
	Proxy:       http.ProxyFromEnvironment,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          20,
	MaxIdleConnsPerHost:   2,
	IdleConnTimeout:       30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

func defaultHeaders() http.Header {
	ua := configs.Config.Extractor.UserAgent
	if ua == "" {
		ua = "distiller/" + configs.Version
	}

	return http.Header{
		"User-Agent":      []string{ua},
		"Accept-Language": []string{"en-US,en;q=0.8"},
	}
}

// Transport wraps an [http.RoundTripper].
type Transport struct {
	http.RoundTripper
	header http.Header
	denied []configs.IPNet
	logger *slog.Logger
}

// RoundTrip implements [http.RoundTripper].
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.checkDestIP(r); err != nil {
		return nil, err
	}

	// Headers are added to a shallow copy of the request.
	req := new(http.Request)
	*req = *r
	req.Header = req.Header.Clone()

	for k, values := range t.header {
		if _, ok := r.Header[textproto.CanonicalMIMEHeaderKey(k)]; !ok {
			req.Header[k] = values
		}
	}

	attrs := []slog.Attr{
		slog.Group("request",
			slog.String("url", req.URL.String()),
			slog.String("method", req.Method),
			slog.Any("headers", req.Header),
		),
	}

	now := time.Now()
	rsp, err := t.RoundTripper.RoundTrip(req)

	if err != nil {
		attrs = append(attrs, slog.Group("response",
			slog.Any("err", err),
		))
	} else {
		attrs = append(attrs, slog.Group("response",
			slog.Int("status", rsp.StatusCode),
			slog.String("content-type", rsp.Header.Get("Content-Type")),
		))
	}
	attrs = append(attrs, slog.Duration("time", time.Since(now)))
	t.Log().LogAttrs(context.Background(), slog.LevelDebug-10, "request", attrs...)

	return rsp, err
}

func (t *Transport) checkDestIP(r *http.Request) error {
	if len(t.denied) == 0 {
		return nil
	}

	hostname := r.URL.Hostname()
	ips := []net.IP{net.ParseIP(hostname)}
	if ips[0] == nil {
		host, err := idna.ToASCII(hostname)
		if err != nil {
			return fmt.Errorf("invalid hostname %s", hostname)
		}
		if ips, err = net.DefaultResolver.LookupIP(r.Context(), "ip", host); err != nil {
			return fmt.Errorf("cannot resolve %s", host)
		}
	}

	for _, cidr := range t.denied {
		for _, ip := range ips {
			if cidr.Contains(ip) {
				return fmt.Errorf("%w: %s (rule %s)", ErrDeniedIP, ip, cidr)
			}
		}
	}

	return nil
}

// Log returns the transport's logger.
func (t *Transport) Log() *slog.Logger {
	return t.logger
}

// SetLogger sets the transport's logger.
func (t *Transport) SetLogger(l *slog.Logger) {
	t.logger = l
}

// SetHeader receives a function that can manipulate the
// transport's default headers.
func (t *Transport) SetHeader(fn func(h http.Header)) {
	fn(t.header)
}

// New returns a new client with a [Transport] configured from
// [configs.Config].
func New() *http.Client {
	return &http.Client{
		Transport: &Transport{
			RoundTripper: defaultTransport.Clone(),
			header:       defaultHeaders(),
			denied:       configs.Config.Extractor.DeniedIPs,
			logger:       slog.Default(),
		},
		Timeout: time.Duration(configs.Config.Extractor.Timeout),
	}
}
