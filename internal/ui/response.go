package ui

import (
	"bytes"
	"fmt"

	"github.com/jroimartin/gocui"

	"swgapi/internal/output"
)

func (a *App) layoutResponse(maxX, maxY int) error {
	a.clearMainViews([]string{"response"})

	if v, err := a.g.SetView("response", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Response"
		v.Wrap = false
		v.Autoscroll = false
		a.renderResponse()
	}
	if a.connOpen || a.aboutOpen {
		return nil
	}
	_, err := a.g.SetCurrentView("response")
	return err
}

// responseText is the request that was sent followed by its outcome.
func (a *App) responseText(color bool) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s)\n", a.lastIntent.Endpoint.Name, a.lastIntent.Mode.Label())
	output.WriteRequest(&buf, a.lastReq)
	buf.WriteString("\n")
	output.WriteOutcome(&buf, a.lastRes, a.lastErr, a.format, color)
	return buf.String()
}

func (a *App) renderResponse() {
	a.renderFooter()
	v, err := a.g.View("response")
	if err != nil {
		return
	}
	v.Clear()
	v.SetOrigin(0, 0)
	if !a.hasLast {
		fmt.Fprintln(v, "(no request yet)")
		return
	}
	fmt.Fprint(v, a.responseText(true))
}

func (a *App) rerun(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse || !a.hasLast {
		return nil
	}
	a.run(a.lastIntent)
	a.renderResponse()
	return nil
}

func (a *App) scrollResponse(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenResponse || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if delta > 0 {
			v.SetOrigin(ox, oy+1)
		} else if oy > 0 {
			v.SetOrigin(ox, oy-1)
		}
		return nil
	}
}

func (a *App) responseToEndpoints(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse {
		return nil
	}
	a.scr = screenEndpoints
	a.errorMsg = ""
	return nil
}
