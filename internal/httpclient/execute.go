package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"swgapi/internal/errors"
	"swgapi/internal/logging"
	"swgapi/internal/model"
)

type Result struct {
	ID          string
	StatusCode  int
	Status      string
	Elapsed     time.Duration
	ContentType string

	// Body is the raw response text.
	Body string
	// JSON holds the decoded body when the status is 200 and the body is
	// valid JSON. Parsed distinguishes a JSON null from "not JSON".
	JSON   any
	Parsed bool
}

// Dispatch runs one execution: validate and build the request, send it,
// classify the outcome. Validation failures never touch the network.
func Dispatch(ctx context.Context, ri model.RequestIntent) (RequestSpec, Result, error) {
	req, err := BuildRequest(ri)
	if err != nil {
		logging.L().Debug().Err(err).Str("endpoint", ri.Endpoint.Name).Msg("request rejected")
		return RequestSpec{}, Result{}, err
	}
	res, err := Execute(ctx, req)
	return req, res, err
}

// Execute sends reqSpec once. A non-200 response yields both a Result and an
// *errors.ApplicationError; a network failure yields an *errors.TransportError.
func Execute(ctx context.Context, reqSpec RequestSpec) (Result, error) {
	id := uuid.NewString()
	log := logging.L().With().Str("execution", id).Logger()

	transport, err := newTransport(reqSpec.TLS)
	if err != nil {
		return Result{ID: id}, errors.NewValidationError("ca-file", err.Error())
	}
	defer transport.CloseIdleConnections()

	var rt http.RoundTripper = transport
	if log.GetLevel() <= zerolog.DebugLevel {
		rt = newDebugRoundTripper(transport, log)
	}
	timeout := reqSpec.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	client := &http.Client{Timeout: timeout, Transport: rt}

	req, err := http.NewRequestWithContext(ctx, reqSpec.Method, reqSpec.URL, nil)
	if err != nil {
		return Result{ID: id}, errors.NewValidationError("url", err.Error())
	}
	for k, v := range reqSpec.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", reqSpec.Method).Str("url", reqSpec.URL).Msg("request failed")
		return Result{ID: id, Elapsed: time.Since(start)}, errors.NewTransportError(reqSpec.Method, reqSpec.URL, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return Result{ID: id, Elapsed: elapsed}, errors.NewTransportError(reqSpec.Method, reqSpec.URL, err)
	}

	res := Result{
		ID:          id,
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Elapsed:     elapsed,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(b),
	}
	log.Debug().
		Str("method", reqSpec.Method).
		Str("url", reqSpec.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")

	if resp.StatusCode != http.StatusOK {
		return res, errors.NewApplicationError(resp.StatusCode, resp.Status, res.Body)
	}

	if v, ok := decodeJSON(b); ok {
		res.JSON = v
		res.Parsed = true
	}
	return res, nil
}

// decodeJSON parses b as exactly one JSON value. Numbers stay json.Number
// so 64-bit object ids survive untouched.
func decodeJSON(b []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}

func newTransport(opts TLSOptions) (*http.Transport, error) {
	tlsConfig, err := NewTLSConfig(opts)
	if err != nil {
		return nil, err
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = tlsConfig
	return t, nil
}
