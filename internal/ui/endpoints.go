package ui

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

func (a *App) layoutEndpoints(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "endpoints"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
		v.Editable = false
	}
	if v, err := a.g.SetView("endpoints", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Endpoints"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
		v.Autoscroll = false
	}
	a.renderFilter()
	a.renderEndpoints()
	if a.connOpen || a.aboutOpen {
		return nil
	}
	_, err := a.g.SetCurrentView("endpoints")
	return err
}

func (a *App) recomputeFilter() {
	a.filtered = rankEndpoints(a.filter, a.endpoints)
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenEndpoints || a.editing || a.connOpen {
			return nil
		}
		a.filter += string(r)
		a.recomputeFilter()
		a.renderFilter()
		a.renderEndpoints()
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || len(a.filter) == 0 {
		return nil
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
	a.renderFilter()
	a.renderEndpoints()
	return nil
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenEndpoints || len(a.filtered) == 0 {
			return nil
		}
		a.selected = clamp(a.selected+delta, 0, len(a.filtered)-1)
		if ev, err := a.g.View("endpoints"); err == nil {
			ev.SetCursor(0, a.selected)
		}
		return nil
	}
}

func (a *App) selectEndpointByNumber(num int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenEndpoints {
			return nil
		}
		idx := num - 1
		if idx < 0 || idx >= len(a.filtered) {
			return nil
		}
		a.selected = idx
		return a.openBuilder(g, v)
	}
}

// openBuilder switches to the builder for the selected endpoint. Values
// typed for a previous endpoint are dropped; the search mode is kept.
func (a *App) openBuilder(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || len(a.filtered) == 0 {
		return nil
	}
	ep := a.endpoints[a.filtered[a.selected]]
	if ep.Name != a.activeEndpoint.Name {
		a.values = map[string]string{}
	}
	a.activeEndpoint = ep
	a.scr = screenBuilder
	a.errorMsg = ""
	a.log.Debug().Str("endpoint", ep.Name).Msg("endpoint selected")
	return nil
}

func (a *App) renderFilter() {
	v, err := a.g.View("filter")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, a.filter)
}

func (a *App) renderEndpoints() {
	v, err := a.g.View("endpoints")
	if err != nil {
		return
	}
	v.Clear()

	for i, idx := range a.filtered {
		ep := a.endpoints[idx]
		prefix := "  "
		if i < 9 {
			prefix = fmt.Sprintf("%d ", i+1)
		}
		fmt.Fprintf(v, "%s%-18s %s  %s  %s%s%s\n",
			prefix, ep.Name, colorizeMethod(ep.Method), highlightPathParams(ep.Path),
			colorDim, ep.Description, colorReset)
	}
	v.SetCursor(0, a.selected)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
