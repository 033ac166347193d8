package ui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"

	"swgapi/internal/errors"
	"swgapi/internal/httpclient"
	"swgapi/internal/model"
	"swgapi/internal/output"
)

func (a *App) layoutBuilder(maxX, maxY int) error {
	keep := []string{"selected", "fields", "preview"}
	if a.editing {
		keep = append(keep, "edit")
	}
	a.clearMainViews(keep)

	if v, err := a.g.SetView("selected", 0, 2, maxX-1, 6); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Selected endpoint"
	}

	fieldsBottom := 6 + (maxY-3-6)/2
	if fieldsBottom < 9 {
		fieldsBottom = 9
	}
	if v, err := a.g.SetView("fields", 0, 6, maxX-1, fieldsBottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Fields"
		v.Highlight = true
	}
	if v, err := a.g.SetView("preview", 0, fieldsBottom, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Request preview"
		v.Wrap = true
	}

	a.renderBuilder()

	if a.connOpen || a.aboutOpen {
		return nil
	}
	if a.editing {
		if _, err := a.g.View("edit"); err == nil {
			a.g.SetViewOnTop("edit")
			a.g.SetCurrentView("edit")
		}
		return nil
	}
	v, err := a.g.SetCurrentView("fields")
	if err != nil {
		return err
	}
	v.SelBgColor = gocui.ColorGreen
	v.SelFgColor = gocui.ColorBlack
	return nil
}

// intent snapshots the session into what a single run needs.
func (a *App) intent() model.RequestIntent {
	return model.NewRequestIntent(a.activeEndpoint, a.conn, a.mode, a.values)
}

func (a *App) activeFields() []model.Field {
	return a.activeEndpoint.ActiveFields(a.mode)
}

func (a *App) moveField(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenBuilder || a.editing || v == nil {
			return nil
		}
		n := len(a.activeFields())
		if n == 0 {
			return nil
		}
		_, cy := v.Cursor()
		v.SetCursor(0, clamp(cy+delta, 0, n-1))
		return nil
	}
}

func (a *App) selectedField(v *gocui.View) (model.Field, bool) {
	fields := a.activeFields()
	_, cy := v.Cursor()
	_, oy := v.Origin()
	i := oy + cy
	if i < 0 || i >= len(fields) {
		return model.Field{}, false
	}
	return fields[i], true
}

func (a *App) toggleMode(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing || !a.activeEndpoint.HasSearchModes() {
		return nil
	}
	a.mode = a.mode.Toggle()
	if v != nil {
		v.SetCursor(0, 0)
	}
	a.errorMsg = ""
	a.renderBuilder()
	return nil
}

func (a *App) resetField(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing || v == nil {
		return nil
	}
	f, ok := a.selectedField(v)
	if !ok {
		return nil
	}
	delete(a.values, f.Key)
	a.renderBuilder()
	return nil
}

func (a *App) beginEdit(g *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.editing || v == nil {
		return nil
	}
	f, ok := a.selectedField(v)
	if !ok {
		return nil
	}

	a.editing = true
	a.editTarget = f.Key

	maxX, maxY := g.Size()
	width := 60
	if width > maxX-4 {
		width = maxX - 4
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - 3) / 2

	if ev, err := g.SetView("edit", x0, y0, x0+width, y0+2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		ev.Editable = true
		ev.Editor = singleLineEditor{}
		ev.BgColor = gocui.ColorBlack
		ev.FgColor = gocui.ColorWhite
	}
	if ev, err := g.View("edit"); err == nil {
		ev.Title = fmt.Sprintf(" %s (enter=ok, esc=cancel) ", f.Label)
		ev.Clear()
		cur := a.values[f.Key]
		fmt.Fprint(ev, cur)
		ev.SetCursor(len(cur), 0)
	}
	g.SetViewOnTop("edit")
	g.SetCurrentView("edit")
	a.renderFooter()
	return nil
}

func (a *App) closeEdit() error {
	if !a.editing {
		return nil
	}
	a.deleteViews("edit")
	a.editing = false
	a.editTarget = ""
	return nil
}

func (a *App) confirmEdit(g *gocui.Gui, v *gocui.View) error {
	if !a.editing {
		return nil
	}
	a.setValue(a.editTarget, viewText(v))
	a.closeEdit()
	a.renderBuilder()
	return nil
}

// setValue stores a field value as typed; empty clears it.
func (a *App) setValue(key, val string) {
	if val == "" {
		delete(a.values, key)
		return
	}
	a.values[key] = val
}

func (a *App) executeRequest(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.editing || a.connOpen {
		return nil
	}
	a.run(a.intent())
	return nil
}

// run dispatches ri inline. Validation problems stay on the builder as a
// footer message; every other outcome goes to the response screen.
func (a *App) run(ri model.RequestIntent) {
	timeout := ri.Connection.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, res, err := a.dispatch(ctx, ri)
	if errors.Is(err, errors.ErrInvalidInput) {
		a.log.Debug().Err(err).Str("endpoint", ri.Endpoint.Name).Msg("request rejected")
		a.errorMsg = err.Error()
		return
	}

	ev := a.log.Debug()
	if err != nil {
		ev = a.log.Warn().Err(err).Str("kind", errors.Kind(err))
	}
	ev.Str("endpoint", ri.Endpoint.Name).Int("status", res.StatusCode).Dur("elapsed", res.Elapsed).Msg("request finished")

	a.hasLast = true
	a.lastIntent = ri
	a.lastReq = req
	a.lastRes = res
	a.lastErr = err
	a.errorMsg = ""
	a.scr = screenResponse
}

func (a *App) renderBuilder() {
	if a.g == nil {
		return
	}
	a.renderFooter()
	ep := a.activeEndpoint

	if v, err := a.g.View("selected"); err == nil {
		v.Clear()
		fmt.Fprintf(v, "%s  %s  %s\n", ep.Name, colorizeMethod(ep.Method), highlightPathParams(ep.Path))
		fmt.Fprintf(v, "%s%s%s\n", colorDim, ep.Description, colorReset)
		if ep.HasSearchModes() {
			fmt.Fprintf(v, "search: %s%s%s (m to switch)\n", colorCyan, a.mode.Label(), colorReset)
		}
	}

	if v, err := a.g.View("fields"); err == nil {
		v.Clear()
		for _, line := range fieldLines(ep, a.mode, a.values) {
			fmt.Fprintln(v, line)
		}
	}

	if v, err := a.g.View("preview"); err == nil {
		v.Clear()
		fmt.Fprint(v, previewText(a.intent()))
	}
}

// fieldLines renders one line per active field; required ones carry '*'.
func fieldLines(ep model.Endpoint, mode model.SearchMode, vals map[string]string) []string {
	fields := ep.ActiveFields(mode)
	if len(fields) == 0 {
		return []string{"(no inputs)"}
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		req := " "
		if f.Required {
			req = "*"
		}
		val := vals[f.Key]
		if val == "" {
			val = fmt.Sprintf("%s(%s, %s)%s", colorDim, f.Key, f.In, colorReset)
		} else {
			val = colorGreen + val + colorReset
		}
		lines = append(lines, fmt.Sprintf("%s%-22s = %s", req, f.Label, val))
	}
	return lines
}

// previewText shows the request a run would send, or why it would be
// rejected.
func previewText(ri model.RequestIntent) string {
	req, err := httpclient.BuildRequest(ri)
	if err != nil {
		return colorYellow + "not ready: " + err.Error() + colorReset + "\n"
	}
	var buf bytes.Buffer
	output.WriteRequest(&buf, req)
	return buf.String()
}

func viewText(v *gocui.View) string {
	return strings.TrimSuffix(v.Buffer(), "\n")
}
