// Package ui is the gocui terminal front end: pick an endpoint, fill in its
// fields, run it against the configured Core3 server and read the response.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/jroimartin/gocui"
	"github.com/rs/zerolog"

	"swgapi/internal/catalog"
	"swgapi/internal/httpclient"
	"swgapi/internal/model"
	"swgapi/internal/output"
)

type screen int

const (
	screenEndpoints screen = iota
	screenBuilder
	screenResponse
)

// dispatchFunc sends one request; swapped out in tests.
type dispatchFunc func(context.Context, model.RequestIntent) (httpclient.RequestSpec, httpclient.Result, error)

type App struct {
	in  io.Reader
	out io.Writer

	g   *gocui.Gui
	log zerolog.Logger

	scr screen

	endpoints []model.Endpoint
	conn      model.Connection
	format    output.Format
	dispatch  dispatchFunc

	filter   string
	filtered []int
	selected int

	// session values survive screen changes; they are copied into a
	// RequestIntent on every run.
	activeEndpoint model.Endpoint
	mode           model.SearchMode
	values         map[string]string

	editing    bool
	editTarget string

	connOpen  bool
	connField connField
	draft     connDraft
	connError string

	aboutOpen bool

	hasLast    bool
	lastIntent model.RequestIntent
	lastReq    httpclient.RequestSpec
	lastRes    httpclient.Result
	lastErr    error
	errorMsg   string
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		in:       in,
		out:      out,
		scr:      screenEndpoints,
		log:      zerolog.Nop(),
		conn:     model.DefaultConnection(),
		format:   output.FormatJSON,
		dispatch: httpclient.Dispatch,
		mode:     model.SearchByName,
		values:   map[string]string{},
	}
}

func (a *App) SetConnection(conn model.Connection) {
	a.conn = conn
}

func (a *App) SetLogger(l zerolog.Logger) {
	a.log = l.With().Str("component", "ui").Logger()
}

// SetFormat picks how JSON bodies are shown; table falls back to JSON.
func (a *App) SetFormat(f output.Format) {
	if f == output.FormatTable {
		f = output.FormatJSON
	}
	a.format = f
}

// Init loads the endpoint catalog and prepares the list.
func (a *App) Init() error {
	a.endpoints = catalog.All()
	if len(a.endpoints) == 0 {
		return fmt.Errorf("endpoint catalog is empty")
	}
	a.filter = ""
	a.selected = 0
	a.recomputeFilter()
	a.log.Debug().Int("endpoints", len(a.endpoints)).Str("base_url", a.conn.BaseURL()).Msg("tui initialized")
	return nil
}

func (a *App) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	a.g = g

	g.BgColor = gocui.ColorBlack
	g.FgColor = gocui.ColorWhite
	g.Cursor = true
	g.InputEsc = true
	g.SetManagerFunc(a.layout)

	if err := a.bindKeys(); err != nil {
		return err
	}
	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderHeader()

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorBlack
		v.FgColor = gocui.ColorWhite
	}
	a.renderFooter()

	var err error
	switch a.scr {
	case screenEndpoints:
		err = a.layoutEndpoints(maxX, maxY)
	case screenBuilder:
		err = a.layoutBuilder(maxX, maxY)
	case screenResponse:
		err = a.layoutResponse(maxX, maxY)
	}
	if err != nil {
		return err
	}

	if a.connOpen {
		return a.layoutConnection(maxX, maxY)
	}
	if a.aboutOpen {
		return a.layoutAbout(maxX, maxY)
	}
	return nil
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{"header": true, "footer": true}
	for _, k := range keep {
		keepSet[k] = true
	}

	for _, n := range []string{"filter", "endpoints", "selected", "fields", "preview", "edit", "response"} {
		if keepSet[n] {
			continue
		}
		if v, err := a.g.View(n); err == nil {
			v.Clear()
			a.g.DeleteView(n)
		}
	}
}

func (a *App) deleteViews(names ...string) {
	if a.g == nil {
		return
	}
	for _, n := range names {
		if v, err := a.g.View(n); err == nil {
			v.Clear()
			a.g.DeleteView(n)
		}
	}
}

type binding struct {
	view    string
	key     any
	handler func(*gocui.Gui, *gocui.View) error
}

func (a *App) bindKeys() error {
	bindings := []binding{
		{"", gocui.KeyCtrlC, a.quit},
		{"", gocui.KeyEsc, a.back},
		{"", gocui.KeyCtrlT, a.openConnection},
		{"", gocui.KeyF1, a.toggleAbout},
		{"", gocui.KeyCtrlR, a.executeRequest},

		// endpoints list
		{"endpoints", gocui.KeyArrowDown, a.moveSel(1)},
		{"endpoints", gocui.KeyArrowUp, a.moveSel(-1)},
		{"endpoints", gocui.KeyEnter, a.openBuilder},
		{"endpoints", gocui.KeyBackspace, a.filterBackspace},
		{"endpoints", gocui.KeyBackspace2, a.filterBackspace},
		{"endpoints", gocui.KeySpace, a.appendFilterRune(' ')},

		// builder
		{"fields", gocui.KeyArrowDown, a.moveField(1)},
		{"fields", gocui.KeyArrowUp, a.moveField(-1)},
		{"fields", gocui.KeyEnter, a.beginEdit},
		{"fields", 'd', a.resetField},
		{"fields", 'm', a.toggleMode},
		{"fields", 'q', a.quit},
		{"edit", gocui.KeyEnter, a.confirmEdit},

		// response
		{"response", gocui.KeyArrowDown, a.scrollResponse(1)},
		{"response", gocui.KeyArrowUp, a.scrollResponse(-1)},
		{"response", 'r', a.rerun},
		{"response", 'q', a.quit},
		{"response", gocui.KeyEnter, a.responseToEndpoints},

		// connection modal
		{"conn-form", gocui.KeyEnter, a.submitConnection},
		{"conn-form", gocui.KeyTab, a.connNextField},
		{"conn-form", gocui.KeyArrowDown, a.connNextField},
		{"conn-form", gocui.KeyArrowUp, a.connPrevField},
		{"conn-form", gocui.KeyCtrlD, a.connClearField},
		{"conn-form", gocui.KeyBackspace, a.connBackspace},
		{"conn-form", gocui.KeyBackspace2, a.connBackspace},
		{"conn-form", gocui.KeySpace, a.connTypeRune(' ')},
	}

	// 1-6 jump straight to an endpoint, every other printable key filters.
	for i := 1; i <= len(a.endpoints) && i <= 9; i++ {
		bindings = append(bindings, binding{"endpoints", rune('0' + i), a.selectEndpointByNumber(i)})
	}
	for r := rune(33); r <= rune(126); r++ {
		if r >= '1' && r < rune('1'+len(a.endpoints)) && r <= '9' {
			continue
		}
		bindings = append(bindings, binding{"endpoints", r, a.appendFilterRune(r)})
	}
	for r := rune(33); r <= rune(126); r++ {
		bindings = append(bindings, binding{"conn-form", r, a.connTypeRune(r)})
	}

	for _, b := range bindings {
		if err := a.g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) back(*gocui.Gui, *gocui.View) error {
	if a.connOpen {
		a.closeConnection()
		return nil
	}
	if a.aboutOpen {
		a.closeAbout()
		return nil
	}
	if a.editing {
		return a.closeEdit()
	}
	switch a.scr {
	case screenResponse:
		a.scr = screenBuilder
	case screenBuilder:
		a.scr = screenEndpoints
	case screenEndpoints:
		// no previous screen
	}
	a.errorMsg = ""
	return nil
}

func (a *App) renderHeader() {
	v, err := a.g.View("header")
	if err != nil {
		return
	}
	v.Clear()
	token := colorYellow + "token: unset (ctrl+t)" + colorReset
	if a.conn.Token != "" {
		token = "token: " + httpclient.MaskToken(a.conn.Token)
	}
	tls := "tls: insecure"
	if !a.conn.Insecure {
		tls = "tls: verified"
	}
	fmt.Fprintf(v, "%sswgapi%s  -  SWGEmu Core3 REST API   %s   %s   %s\n",
		colorGreen, colorReset, a.conn.BaseURL(), token, tls)
}

func (a *App) renderFooter() {
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	if a.errorMsg != "" {
		fmt.Fprint(v, colorRed+a.errorMsg+colorReset)
		return
	}
	fmt.Fprint(v, a.footerHint())
}

func (a *App) footerHint() string {
	switch {
	case a.connOpen:
		return "connection: tab/up/down: field   enter: save   ctrl+d: clear field   esc: cancel"
	case a.aboutOpen:
		return "esc/F1: close"
	case a.editing:
		return "enter: ok   esc: cancel"
	}
	switch a.scr {
	case screenEndpoints:
		return fmt.Sprintf("type: filter   1-%d: quick select   enter: select   ctrl+t: connection   F1: about   ctrl+c: quit", len(a.endpoints))
	case screenBuilder:
		hint := "enter: edit   d: reset field   ctrl+r: run   ctrl+t: connection   esc: back   q: quit"
		if a.activeEndpoint.HasSearchModes() {
			hint = "m: search mode   " + hint
		}
		return hint
	case screenResponse:
		return "up/down: scroll   r: rerun   enter: back to endpoints   esc: back   q: quit"
	}
	return ""
}
