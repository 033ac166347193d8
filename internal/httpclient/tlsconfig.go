package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSOptions controls server certificate checking. Core3 servers usually
// run with self-signed certificates, so callers default to InsecureSkipVerify.
type TLSOptions struct {
	CAFile             string
	InsecureSkipVerify bool
}

// NewTLSConfig returns the client TLS configuration for opts.
func NewTLSConfig(opts TLSOptions) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: opts.InsecureSkipVerify,
	}
	if !opts.InsecureSkipVerify && opts.CAFile != "" {
		pool := x509.NewCertPool()
		pem, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, err
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("failed to append cert from PEM file: %s", opts.CAFile)
		}
		tlsConfig.RootCAs = pool
	}
	return tlsConfig, nil
}
