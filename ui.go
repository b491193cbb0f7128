package main

import (
	"image"
	"image/color"
	"path/filepath"
	"sync/atomic"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/linegraph/backend"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var reloadIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *ChartView
	openBtn     widget.Clickable
	reloadBtn   widget.Clickable
	explorerBtn widget.Clickable
	// choosing is set while the file chooser is open.
	choosing atomic.Bool
	version  int

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		chart:         NewChartView(ws.Bundle.Config),
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Stream),
	}
}

// chooseFile asks the user for a data file without blocking the frame.
func (ui *UI) chooseFile() {
	if !ui.choosing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer ui.choosing.Store(false)
		if err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
			log.WithError(err).Warn("failed loading data file")
		}
	}()
}

// Update the state of the UI.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.session.Version != ui.version {
		ui.version = ui.session.Version
		// A failed reload keeps the last good data on screen.
		if ui.session.Err == nil && ui.session.Data.Initialized() {
			ui.chart.SetData(ui.session.Data)
		}
	}
	if ui.openBtn.Clicked(gtx) || ui.explorerBtn.Clicked(gtx) {
		ui.chooseFile()
	}
	if ui.reloadBtn.Clicked(gtx) && ui.session.Path != "" {
		path := ui.session.Path
		go func() {
			if err := ui.ws.Bundle.Datasource.Open(path); err != nil {
				log.WithError(err).Warn("failed reloading data file")
			}
		}()
	}
}

func (ui *UI) errorLabel(gtx C) D {
	if ui.session.Err == nil {
		return D{}
	}
	l := material.Body1(ui.th, ui.session.Err.Error())
	l.Color = color.NRGBA{R: 150, A: 255}
	return l.Layout(gtx)
}

func (ui *UI) layoutToolbar(gtx C) D {
	source := ui.chart.data.Source
	if source == "" {
		source = "unsaved data"
	} else {
		source = filepath.Base(source)
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			if ui.choosing.Load() {
				gtx = gtx.Disabled()
			}
			return material.IconButton(ui.th, &ui.openBtn, openIcon, "Open data file").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			if ui.session.Path == "" {
				gtx = gtx.Disabled()
			}
			return material.IconButton(ui.th, &ui.reloadBtn, reloadIcon, "Reload data file").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: 8}.Layout),
		layout.Rigid(material.Body1(ui.th, source).Layout),
		layout.Rigid(layout.Spacer{Width: 8}.Layout),
		layout.Flexed(1, ui.errorLabel),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			if ui.choosing.Load() {
				gtx = gtx.Disabled()
			}
			return material.Button(ui.th, &ui.explorerBtn, "Open Data File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return ui.errorLabel(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.chart.data.Initialized() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
