package httpclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// debugRoundTripper logs each request and its response at debug level.
// The Authorization header is masked.
type debugRoundTripper struct {
	rt  http.RoundTripper
	log zerolog.Logger
}

func newDebugRoundTripper(rt http.RoundTripper, log zerolog.Logger) http.RoundTripper {
	return &debugRoundTripper{rt: rt, log: log}
}

func (d *debugRoundTripper) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	d.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("headers", headerString(req.Header)).
		Msg("sending request")

	defer func(begin time.Time) {
		if err != nil {
			d.log.Debug().Err(err).Str("url", req.URL.String()).Msg("failed to reach core3 server")
			return
		}
		d.log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("status", resp.Status).
			Dur("duration", time.Since(begin)).
			Msg("response received")
	}(time.Now())

	return d.rt.RoundTrip(req)
}

func headerString(h http.Header) string {
	var parts []string
	for _, k := range sortedKeys(h) {
		for _, v := range h[k] {
			if strings.EqualFold(k, "Authorization") {
				v = maskAuthorization(v)
			}
			parts = append(parts, k+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}
