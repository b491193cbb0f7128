package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by every window.
type Bundle struct {
	Datasource *Datasource
	Config     Config
}

func NewBundle(ctx context.Context, cfg Config) (Bundle, error) {
	ds, err := NewDatasource(ctx)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Datasource: ds,
		Config:     cfg,
	}, nil
}
