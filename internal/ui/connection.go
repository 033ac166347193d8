package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jroimartin/gocui"

	"swgapi/internal/model"
)

type connField int

const (
	connHost connField = iota
	connPort
	connToken
	connFieldCount
)

// connDraft holds the modal's text until it is saved.
type connDraft struct {
	host  string
	port  string
	token string
}

func draftFrom(c model.Connection) connDraft {
	return connDraft{host: c.Host, port: strconv.Itoa(c.Port), token: c.Token}
}

// apply returns base with the draft's host, port and token. Only the port
// is checked here; range and emptiness are reported when a request runs.
func (d connDraft) apply(base model.Connection) (model.Connection, error) {
	port, err := strconv.Atoi(strings.TrimSpace(d.port))
	if err != nil {
		return base, fmt.Errorf("port must be a number, got %q", d.port)
	}
	base.Host = strings.TrimSpace(d.host)
	base.Port = port
	base.Token = d.token
	return base, nil
}

func (d *connDraft) field(f connField) *string {
	switch f {
	case connPort:
		return &d.port
	case connToken:
		return &d.token
	default:
		return &d.host
	}
}

func (a *App) layoutConnection(maxX, maxY int) error {
	width := maxX - 10
	if width > 80 {
		width = 80
	}
	if width < 40 {
		width = 40
	}
	height := 11
	if height > maxY-2 {
		height = maxY - 2
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	if v, err := a.g.SetView("conn-form", x0, y0, x0+width, y0+height); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Connection"
	}
	a.renderConnection()

	if _, err := a.g.SetCurrentView("conn-form"); err != nil {
		return err
	}
	_, err := a.g.SetViewOnTop("conn-form")
	return err
}

func (a *App) openConnection(*gocui.Gui, *gocui.View) error {
	if a.connOpen || a.editing {
		return nil
	}
	a.closeAbout()
	a.connOpen = true
	a.connField = connHost
	a.connError = ""
	a.draft = draftFrom(a.conn)
	return nil
}

func (a *App) closeConnection() {
	a.connOpen = false
	a.connError = ""
	a.draft = connDraft{}
	a.deleteViews("conn-form")
}

func (a *App) submitConnection(*gocui.Gui, *gocui.View) error {
	if !a.connOpen {
		return nil
	}
	conn, err := a.draft.apply(a.conn)
	if err != nil {
		a.connError = err.Error()
		a.renderConnection()
		return nil
	}
	a.conn = conn
	a.log.Debug().Str("base_url", conn.BaseURL()).Bool("token_set", conn.Token != "").Msg("connection updated")
	a.closeConnection()
	if a.scr == screenBuilder {
		a.renderBuilder()
	}
	return nil
}

func (a *App) connTypeRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if !a.connOpen {
			return nil
		}
		*a.draft.field(a.connField) += string(r)
		a.renderConnection()
		return nil
	}
}

func (a *App) connBackspace(*gocui.Gui, *gocui.View) error {
	if !a.connOpen {
		return nil
	}
	s := a.draft.field(a.connField)
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
	a.renderConnection()
	return nil
}

func (a *App) connClearField(*gocui.Gui, *gocui.View) error {
	if !a.connOpen {
		return nil
	}
	*a.draft.field(a.connField) = ""
	a.renderConnection()
	return nil
}

func (a *App) connNextField(*gocui.Gui, *gocui.View) error {
	if !a.connOpen {
		return nil
	}
	a.connField = (a.connField + 1) % connFieldCount
	a.renderConnection()
	return nil
}

func (a *App) connPrevField(*gocui.Gui, *gocui.View) error {
	if !a.connOpen {
		return nil
	}
	a.connField = (a.connField + connFieldCount - 1) % connFieldCount
	a.renderConnection()
	return nil
}

func (a *App) renderConnection() {
	v, err := a.g.View("conn-form")
	if err != nil {
		return
	}
	v.Clear()
	if a.connError != "" {
		fmt.Fprintf(v, "%serror: %s%s\n\n", colorRed, a.connError, colorReset)
	}
	fmt.Fprintf(v, "host:  %s%s\n", fieldMarker(a.connField == connHost), a.draft.host)
	fmt.Fprintf(v, "port:  %s%s\n", fieldMarker(a.connField == connPort), a.draft.port)
	fmt.Fprintf(v, "token: %s%s\n\n", fieldMarker(a.connField == connToken), mask(a.draft.token))
	fmt.Fprintf(v, "%sThe token is Core3.RESTServer.APIToken in the server's config-local.lua.%s\n", colorDim, colorReset)
	fmt.Fprintln(v, "tab: next field   enter: save   ctrl+d: clear field   esc: cancel")
}

func fieldMarker(active bool) string {
	if active {
		return "> "
	}
	return "  "
}
