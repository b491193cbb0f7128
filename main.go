// Command linegraph-view shows a data file as an interactive line chart and
// redraws it whenever the file changes.
package main

import (
	"context"
	"flag"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chart"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	configPath := flag.String("config", "", "YAML chart options file")
	legacy := flag.Bool("legacy", false, "start from the legacy option profile")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	log.SetLevel(level)
	chart.SetLogger(log)
	backend.SetLogger(log)

	profile := ""
	if *legacy {
		profile = backend.ProfileLegacy
	}
	var cfg backend.Config
	if *configPath != "" {
		cfg, err = backend.LoadProfileOptions(*configPath, profile)
	} else {
		cfg.Options, err = backend.ProfileOptions(profile)
	}
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		w := app.NewWindow(app.Title("linegraph"))
		if err := loop(w, cfg, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, cfg backend.Config, path string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle, err := backend.NewBundle(ctx, cfg)
	if err != nil {
		return err
	}
	if path != "" {
		if err := bundle.Datasource.Open(path); err != nil {
			log.WithError(err).Warn("failed opening data file")
		}
	}
	ws := backend.NewWindowState(ctx, bundle, w)
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl)

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
