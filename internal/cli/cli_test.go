package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swgapi/internal/core3test"
	"swgapi/internal/errors"
	"swgapi/internal/model"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "swgapi.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log-output: discard\n"), 0o600))

	var out, errOut bytes.Buffer
	app := New("1.2.3", "abc123", "2026-01-01")
	app.SetIO(strings.NewReader(""), &out, &errOut)
	code := app.Run(context.Background(), append([]string{"--config", cfgFile}, args...))
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func connArgs(conn model.Connection) []string {
	return []string{"--host", conn.Host, "--port", strconv.Itoa(conn.Port), "--token", conn.Token}
}

func TestCallVersion(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "call", "version")...)
	require.Equal(t, ExitOK, res.code, res.stderr)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &body))
	assert.Equal(t, "1.0", body["version"])

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "Bearer "+core3test.Token, last.Headers.Get("Authorization"))
}

func TestCallByNumberRaw(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "-o", "raw", "call", "4")...)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "OK\n", res.stdout)
}

func TestCallObjectNotFound(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "call", "object-info", "--oid", "999")...)
	assert.Equal(t, ExitError, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "application error")
	assert.Contains(t, res.stderr, "404")
	assert.NotContains(t, res.stderr, "error: ")
}

func TestCallLookupInfersIDMode(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "call", "guild-lookup", "--oid", "42")...)
	require.Equal(t, ExitOK, res.code, res.stderr)

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "/v1/lookup/guild/", last.Path)
	assert.Equal(t, "42", last.Query.Get("oid"))
	assert.False(t, last.Query.Has("name"))
}

func TestCallLookupByName(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "call", "character lookup", "--name", "Han Solo", "--oid", "7", "--by", "name")...)
	require.Equal(t, ExitOK, res.code, res.stderr)

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "Han Solo", last.Query.Get("name"))
	assert.False(t, last.Query.Has("oid"))
}

func TestCallValidation(t *testing.T) {
	srv := core3test.NewServer(t)
	noToken := srv.Connection()
	noToken.Token = ""

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing token", append(connArgs(noToken), "call", "version"), "token"},
		{"missing oid", append(connArgs(srv.Connection()), "call", "object-info"), "oid"},
		{"unknown endpoint", append(connArgs(srv.Connection()), "call", "planets"), "unknown endpoint"},
		{"bad mode", append(connArgs(srv.Connection()), "call", "guild-lookup", "--by", "planet"), "name or id"},
		{"no endpoint", append(connArgs(srv.Connection()), "call"), "expected one endpoint"},
		{"bad port", []string{"--port", "70000", "call", "version"}, "port"},
		{"bad flag", []string{"--nope", "call", "version"}, "nope"},
		{"bad output", []string{"-o", "xml", "endpoints"}, "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.args...)
			assert.Equal(t, ExitUsage, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
	assert.Empty(t, srv.Requests())
}

func TestCallTransportError(t *testing.T) {
	srv := core3test.NewServer(t)
	conn := srv.Connection()
	srv.Close()

	res := run(t, append(connArgs(conn), "call", "version")...)
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "transport error")
}

func TestCallSecureRejectsSelfSigned(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "--insecure=false", "call", "version")...)
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "transport error")
}

func TestCallDryRun(t *testing.T) {
	srv := core3test.NewServer(t)
	res := run(t, append(connArgs(srv.Connection()), "call", "object-info", "--oid", "12345", "--dry-run")...)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "GET https://")
	assert.Contains(t, res.stdout, "/v1/object/12345/")
	assert.NotContains(t, res.stdout, core3test.Token)
	assert.Empty(t, srv.Requests())
}

func TestEndpoints(t *testing.T) {
	res := run(t, "-o", "json", "endpoints")
	require.Equal(t, ExitOK, res.code, res.stderr)
	var eps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &eps))
	require.Len(t, eps, 6)
	assert.Equal(t, "Version", eps[0]["name"])

	res = run(t, "-o", "table", "endpoints")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "/v1/lookup/character/")
}

func TestOpenAPI(t *testing.T) {
	res := run(t, "openapi")
	require.Equal(t, ExitOK, res.code, res.stderr)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	res = run(t, "-o", "yaml", "openapi")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "bearerAuth")
}

func TestVersion(t *testing.T) {
	res := run(t, "version")
	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "swgapi version 1.2.3")
	assert.Contains(t, res.stdout, "commit: abc123")
}

func TestUnknownCommand(t *testing.T) {
	res := run(t, "bogus")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(errors.NewValidationError("x", "y")))
	assert.Equal(t, ExitError, ExitCode(errors.NewApplicationError(500, "500", "")))
	assert.Equal(t, ExitError, ExitCode(reportedError{errors.NewApplicationError(404, "404", "")}))
	assert.Equal(t, ExitUsage, ExitCode(reportedError{errors.NewValidationError("x", "y")}))
}

func TestResolveEndpoint(t *testing.T) {
	ep, err := resolveEndpoint("2")
	require.NoError(t, err)
	assert.Equal(t, "Object Info", ep.Name)

	_, err = resolveEndpoint("7")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
