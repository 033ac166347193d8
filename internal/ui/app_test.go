package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swgapi/internal/catalog"
	"swgapi/internal/core3test"
	"swgapi/internal/errors"
	"swgapi/internal/httpclient"
	"swgapi/internal/model"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(nil, nil)
	require.NoError(t, a.Init())
	return a
}

func selectEndpoint(t *testing.T, a *App, name string) {
	t.Helper()
	ep, ok := catalog.Lookup(name)
	require.True(t, ok, name)
	a.activeEndpoint = ep
	a.scr = screenBuilder
}

func TestFuzzyMatchScore(t *testing.T) {
	s, ok := fuzzyMatchScore("gld", "guild lookup")
	assert.True(t, ok)
	assert.Positive(t, s)

	_, ok = fuzzyMatchScore("xyz", "guild lookup")
	assert.False(t, ok)

	s, ok = fuzzyMatchScore("", "anything")
	assert.True(t, ok)
	assert.Zero(t, s)
}

func TestRankEndpoints(t *testing.T) {
	eps := catalog.All()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rankEndpoints("  ", eps))

	got := rankEndpoints("guild", eps)
	require.NotEmpty(t, got)
	assert.Equal(t, "Guild Lookup", eps[got[0]].Name)

	got = rankEndpoints("admin", eps)
	var names []string
	for _, i := range got {
		names = append(names, eps[i].Name)
	}
	assert.Contains(t, names, "Config")
	assert.Contains(t, names, "Stats")

	assert.Empty(t, rankEndpoints("zzzz", eps))
}

func TestRecomputeFilterResetsSelection(t *testing.T) {
	a := newTestApp(t)
	a.selected = 5
	a.filter = "version"
	a.recomputeFilter()
	assert.Zero(t, a.selected)
	assert.Equal(t, "Version", a.endpoints[a.filtered[0]].Name)
}

func TestOpenBuilderKeepsValuesForSameEndpoint(t *testing.T) {
	a := newTestApp(t)
	a.filter = "object"
	a.recomputeFilter()
	require.NoError(t, a.openBuilder(nil, nil))
	assert.Equal(t, "Object Info", a.activeEndpoint.Name)

	a.setValue("oid", "12345")
	assert.Equal(t, "12345", a.values["oid"])

	a.scr = screenEndpoints
	require.NoError(t, a.openBuilder(nil, nil))
	assert.Equal(t, "12345", a.values["oid"])

	a.scr = screenEndpoints
	a.filter = ""
	a.recomputeFilter()
	a.selected = 0
	require.NoError(t, a.openBuilder(nil, nil))
	assert.Equal(t, "Version", a.activeEndpoint.Name)
	assert.Empty(t, a.values)
}

func TestSetValueKeepsInputVerbatim(t *testing.T) {
	a := newTestApp(t)
	a.setValue("name", " Han Solo ")
	assert.Equal(t, " Han Solo ", a.values["name"])

	a.setValue("name", "")
	_, ok := a.values["name"]
	assert.False(t, ok)
}

func TestFieldLines(t *testing.T) {
	ep, _ := catalog.Lookup("Character Lookup")

	byName := fieldLines(ep, model.SearchByName, map[string]string{"name": "Han", "oid": "1"})
	require.Len(t, byName, 1)
	assert.Contains(t, byName[0], "Character Name")
	assert.Contains(t, byName[0], "Han")

	byID := fieldLines(ep, model.SearchByID, nil)
	require.Len(t, byID, 1)
	assert.Contains(t, byID[0], "Character Object ID")
	assert.Contains(t, byID[0], "(oid, query)")

	obj, _ := catalog.Lookup("Object Info")
	assert.True(t, strings.HasPrefix(fieldLines(obj, model.SearchAny, nil)[0], "*"))

	ver, _ := catalog.Lookup("Version")
	assert.Equal(t, []string{"(no inputs)"}, fieldLines(ver, model.SearchAny, nil))
}

func TestPreviewText(t *testing.T) {
	ep, _ := catalog.Lookup("Object Info")
	conn := model.DefaultConnection()

	out := previewText(model.NewRequestIntent(ep, conn, model.SearchAny, map[string]string{"oid": "12345"}))
	assert.Contains(t, out, "not ready")
	assert.Contains(t, out, "token")

	conn.Token = "secret-token"
	out = previewText(model.NewRequestIntent(ep, conn, model.SearchAny, map[string]string{"oid": "12345"}))
	assert.Contains(t, out, "GET https://localhost:44443/v1/object/12345/")
	assert.NotContains(t, out, "secret-token")
}

func TestConnDraftApply(t *testing.T) {
	base := model.DefaultConnection()
	d := draftFrom(base)
	assert.Equal(t, "44443", d.port)

	d.host = " core3.example "
	d.port = "4443"
	d.token = " abc "
	got, err := d.apply(base)
	require.NoError(t, err)
	assert.Equal(t, "core3.example", got.Host)
	assert.Equal(t, 4443, got.Port)
	assert.Equal(t, " abc ", got.Token)
	assert.True(t, got.Insecure)
	assert.Equal(t, model.DefaultTimeout, got.Timeout)

	d.port = "44a"
	_, err = d.apply(base)
	assert.Error(t, err)
}

func TestConnDraftField(t *testing.T) {
	var d connDraft
	*d.field(connHost) = "h"
	*d.field(connPort) = "1"
	*d.field(connToken) = "t"
	assert.Equal(t, connDraft{host: "h", port: "1", token: "t"}, d)
	assert.Equal(t, connHost, (connToken+1)%connFieldCount)
}

func TestRunValidationStaysOnBuilder(t *testing.T) {
	a := newTestApp(t)
	calls := 0
	a.dispatch = func(ctx context.Context, ri model.RequestIntent) (httpclient.RequestSpec, httpclient.Result, error) {
		calls++
		return httpclient.Dispatch(ctx, ri)
	}
	selectEndpoint(t, a, "Version")

	a.run(a.intent())
	assert.Equal(t, 1, calls)
	assert.Equal(t, screenBuilder, a.scr)
	assert.Contains(t, a.errorMsg, "token")
	assert.False(t, a.hasLast)
}

func TestRunAgainstStub(t *testing.T) {
	srv := core3test.NewServer(t)
	a := newTestApp(t)
	a.SetConnection(srv.Connection())
	selectEndpoint(t, a, "Object Info")
	a.setValue("oid", "12345")

	a.run(a.intent())
	require.Empty(t, a.errorMsg)
	assert.Equal(t, screenResponse, a.scr)
	require.NoError(t, a.lastErr)
	assert.Equal(t, 200, a.lastRes.StatusCode)

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "/v1/object/12345/", last.Path)
	assert.Empty(t, last.Query)

	text := a.responseText(false)
	assert.Contains(t, text, "Object Info")
	assert.Contains(t, text, "/v1/object/12345/")
	assert.NotContains(t, text, core3test.Token)
}

func TestRunApplicationError(t *testing.T) {
	srv := core3test.NewServer(t)
	a := newTestApp(t)
	a.SetConnection(srv.Connection())
	selectEndpoint(t, a, "Object Info")
	a.setValue("oid", "999")

	a.run(a.intent())
	assert.Equal(t, screenResponse, a.scr)
	assert.True(t, errors.Is(a.lastErr, errors.ErrNotFound))
	assert.Contains(t, a.responseText(false), "application error")
}

func TestRerunUsesSnapshot(t *testing.T) {
	srv := core3test.NewServer(t)
	a := newTestApp(t)
	a.SetConnection(srv.Connection())
	selectEndpoint(t, a, "Guild Lookup")
	a.setValue("name", "Rebels")
	a.run(a.intent())
	require.True(t, a.hasLast)

	// later edits do not leak into the recorded intent
	a.setValue("name", "Empire")
	a.conn.Token = ""

	a.run(a.lastIntent)
	assert.Empty(t, a.errorMsg)
	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "Rebels", last.Query.Get("name"))
	assert.Len(t, srv.Requests(), 2)
}

func TestRunTransportError(t *testing.T) {
	srv := core3test.NewServer(t)
	conn := srv.Connection()
	srv.Close()

	a := newTestApp(t)
	a.SetConnection(conn)
	selectEndpoint(t, a, "Version")
	a.run(a.intent())
	assert.Equal(t, screenResponse, a.scr)
	assert.Equal(t, "transport error", errors.Kind(a.lastErr))
}

func TestFooterHint(t *testing.T) {
	a := newTestApp(t)
	assert.Contains(t, a.footerHint(), "1-6: quick select")

	selectEndpoint(t, a, "Character Lookup")
	assert.Contains(t, a.footerHint(), "m: search mode")

	selectEndpoint(t, a, "Version")
	assert.NotContains(t, a.footerHint(), "m: search mode")

	a.connOpen = true
	assert.Contains(t, a.footerHint(), "connection")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "****", mask("abcd"))
}
