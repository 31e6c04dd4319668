package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/vault-guard/internal/config"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/utils"
)

type httpGateway struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPGateway constructs the HTTP/REST implementation of [Gateway].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. The client keeps a cookie jar and never retries.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPGateway(adapterCfg config.ClientAdapter, logger *logger.Logger) (Gateway, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpGateway{client: client, ids: utils.NewUUIDGenerator(), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Do implements [Gateway].
func (g *httpGateway) Do(ctx context.Context, req Request, result any) error {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = g.ids.Generate()
		ctx = utils.WithRequestID(ctx, requestID)
	}

	log := g.logger.With().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.Path).
		Logger()

	r := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-ID", requestID)

	if token := strings.TrimSpace(req.Token); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		log.Err(err).Dur("elapsed", time.Since(start)).Msg("request failed before a response was received")
		return newTransportError(err)
	}

	status := resp.StatusCode()
	log.Debug().Int("status", status).Dur("elapsed", time.Since(start)).Msg("response received")

	body := bytes.TrimSpace(resp.Body())

	// the body is parsed before the status is looked at
	if len(body) > 0 && !json.Valid(body) {
		log.Error().Int("status", status).Msg("response body is not valid JSON")
		return newMalformedError(status, statusCause(status))
	}

	if err = mapHTTPError(status, body); err != nil {
		return err
	}

	if len(body) == 0 || result == nil {
		return nil
	}
	if err = json.Unmarshal(body, result); err != nil {
		log.Err(err).Int("status", status).Msg("response body does not match the expected shape")
		return newMalformedError(status, err)
	}

	return nil
}
