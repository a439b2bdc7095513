// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package mt is the machine-translation client. It speaks a small JSON
// protocol against a configurable endpoint: POST /translate with the
// language pair and a batch of texts, answered by the translations in the
// same order. Requests are throttled through a token bucket so batch runs
// do not hammer the service.
package mt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"codeberg.org/transcat/transcat/lang"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 1
	defaultTimeout           = 30 * time.Second
)

var (
	ErrNoEndpoint       = errors.New("no machine translation endpoint configured")
	ErrNoTargetLanguage = errors.New("no target language set")
)

// Options configures a Client. Endpoint is required; the zero value of
// every other field selects a default.
type Options struct {
	Endpoint          string
	APIKey            string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client is a machine-translation connection, safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	apiKey  string
}

func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    resty.New().SetBaseURL(strings.TrimRight(opts.Endpoint, "/")).SetTimeout(timeout),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		apiKey:  opts.APIKey,
	}, nil
}

type translateRequest struct {
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
	Texts      []string `json:"texts"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
}

// Translate sends texts for translation and returns the translations in
// matching order. The call first waits for the rate limiter, honoring
// ctx. An unset source language is sent as English.
func (c *Client) Translate(ctx context.Context, srcLang, dstLang lang.Language, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if !dstLang.IsValid() {
		return nil, ErrNoTargetLanguage
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	src := "en"
	if srcLang.IsValid() {
		src = srcLang.BCP47()
	}
	var resp translateResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(translateRequest{SourceLang: src, TargetLang: dstLang.BCP47(), Texts: texts}).
		SetResult(&resp)
	if c.apiKey != "" {
		req.SetHeader("Authorization", "Bearer "+c.apiKey)
	}
	r, err := req.Post("/translate")
	if err != nil {
		return nil, fmt.Errorf("machine translation request: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("machine translation request: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("machine translation returned %d translations for %d texts", len(resp.Translations), len(texts))
	}
	return resp.Translations, nil
}
