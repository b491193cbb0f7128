package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
)

// Session is the latest state of the data file being shown.
type Session struct {
	// Path is the file the data came from, or empty for data read from a
	// stream that cannot be reloaded.
	Path string
	Data Dataset
	// Version increases every time the session changes.
	Version int
	Err     error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type sessionState struct {
	session Session
	// changed is closed and replaced whenever session changes.
	changed chan struct{}
}

// Datasource loads data files and reloads them when they are written to.
type Datasource struct {
	state   RWBox[sessionState]
	watcher *fsnotify.Watcher
	// dir is the directory currently being watched.
	dir     atomic.Pointer[string]
	version atomic.Int64
}

// NewDatasource returns a datasource that watches files until ctx is done.
func NewDatasource(ctx context.Context) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{watcher: watcher}
	d.state.Write(func(s *sessionState) {
		s.changed = make(chan struct{})
	})
	go d.run(ctx)
	return d, nil
}

func (d *Datasource) publish(session Session) {
	session.Version = int(d.version.Add(1))
	d.state.Write(func(s *sessionState) {
		s.session = session
		close(s.changed)
		s.changed = make(chan struct{})
	})
}

// Current returns the latest session.
func (d *Datasource) Current() Session {
	var out Session
	d.state.Read(func(s *sessionState) {
		out = s.session
	})
	return out
}

// Stream emits the current session and then every change to it until ctx
// is done. Slow readers skip intermediate sessions.
func (d *Datasource) Stream(ctx context.Context) <-chan Session {
	out := make(chan Session)
	go func() {
		defer close(out)
		for {
			var (
				session Session
				changed chan struct{}
			)
			d.state.Read(func(s *sessionState) {
				session, changed = s.session, s.changed
			})
			select {
			case out <- session:
			case <-changed:
				continue
			case <-ctx.Done():
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Open loads the file at path, replacing the current session, and reloads
// it whenever it changes on disk. Load failures are reported through the
// session as well as returned.
func (d *Datasource) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := d.watch(filepath.Dir(abs)); err != nil {
		Logger().WithError(err).WithField("path", abs).Warn("not watching for changes")
	}
	return d.reload(abs, false)
}

// reload publishes the content of path. A growing file is read up to its
// last complete line.
func (d *Datasource) reload(path string, growing bool) error {
	load := Load
	if growing {
		load = loadGrowing
	}
	data, err := load(path)
	d.publish(Session{Path: path, Data: data, Err: err})
	return err
}

// LoadFromStream replaces the current session with data read once from r.
func (d *Datasource) LoadFromStream(r io.ReadCloser, name string) error {
	defer r.Close()
	data, err := Decode(r, name)
	d.publish(Session{Data: data, Err: err})
	return err
}

// LoadFromFile asks the user to choose a data file and opens it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile("csv", "json", "xlsx")
	if err != nil {
		if errors.Is(err, explorer.ErrUserDecline) {
			return nil
		}
		return fmt.Errorf("failed choosing a data file: %w", err)
	}
	if f, ok := file.(interface{ Name() string }); ok {
		file.Close()
		return d.Open(f.Name())
	}
	return d.LoadFromStream(file, "")
}

// watch switches the watcher to dir. Watching the directory rather than
// the file survives editors that replace files on save.
func (d *Datasource) watch(dir string) error {
	if old := d.dir.Load(); old != nil {
		if *old == dir {
			return nil
		}
		_ = d.watcher.Remove(*old)
	}
	if err := d.watcher.Add(dir); err != nil {
		return err
	}
	d.dir.Store(&dir)
	return nil
}

func (d *Datasource) run(ctx context.Context) {
	defer d.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			current := d.Current().Path
			if current == "" || filepath.Clean(ev.Name) != current {
				continue
			}
			if err := d.reload(current, true); err != nil {
				Logger().WithError(err).WithField("path", current).Warn("failed reloading")
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			Logger().WithError(err).Warn("file watcher failed")
		}
	}
}
