package ui

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

var aboutLines = []string{
	"swgapi talks to the REST API built into the SWGEmu Core3 server.",
	"",
	"Every request carries  Authorization: Bearer <token>.",
	"The token is set on the server as Core3.RESTServer.APIToken",
	"in config-local.lua; enter it with ctrl+t.",
	"",
	"The server usually runs with a self-signed certificate, so TLS",
	"verification is off unless insecure=false is configured.",
}

func (a *App) layoutAbout(maxX, maxY int) error {
	width := 70
	if width > maxX-4 {
		width = maxX - 4
	}
	height := len(aboutLines) + 1
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	if v, err := a.g.SetView("about", x0, y0, x0+width, y0+height); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "About"
		v.Wrap = true
		for _, l := range aboutLines {
			fmt.Fprintln(v, l)
		}
	}
	if _, err := a.g.SetCurrentView("about"); err != nil {
		return err
	}
	_, err := a.g.SetViewOnTop("about")
	return err
}

func (a *App) toggleAbout(*gocui.Gui, *gocui.View) error {
	if a.connOpen || a.editing {
		return nil
	}
	if a.aboutOpen {
		a.closeAbout()
		return nil
	}
	a.aboutOpen = true
	return nil
}

func (a *App) closeAbout() {
	a.aboutOpen = false
	a.deleteViews("about")
}
