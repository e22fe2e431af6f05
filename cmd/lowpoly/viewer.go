package main

import (
	"image"

	"github.com/esimov/lowpoly"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/exp/slog"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/xerrors"
)

// runViewer opens the interactive window and blocks until it is closed.
func runViewer(s *lowpoly.Session, logger *slog.Logger) error {
	var err error
	driver.Main(func(scr screen.Screen) {
		err = loop(scr, s, logger)
	})
	return err
}

// loop is the frame loop: input events are queued on the session and every
// paint event updates the session once before drawing it.
func loop(scr screen.Screen, s *lowpoly.Session, logger *slog.Logger) error {
	width, height := s.Size()

	w, err := scr.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height,
		Title:  "lowpoly",
	})
	if err != nil {
		return xerrors.Errorf("unable to open the window: %w", err)
	}
	defer w.Release()

	buf, err := scr.NewBuffer(image.Point{X: width, Y: height})
	if err != nil {
		return xerrors.Errorf("unable to allocate the frame buffer: %w", err)
	}
	defer buf.Release()

	logger.Debug("window opened", "width", width, "height", height)

	var (
		r       = &lowpoly.Renderer{}
		pending bool
	)
	// repaint schedules a single frame, however many inputs arrive before it.
	repaint := func() {
		if !pending {
			pending = true
			w.Send(paint.Event{})
		}
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case key.Event:
			if e.Code == key.CodeEscape {
				return nil
			}
			if ev, ok := translateKey(e); ok {
				s.Dispatch(ev)
				repaint()
			}

		case mouse.Event:
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				s.Dispatch(lowpoly.Click{X: e.X, Y: e.Y})
				repaint()
			}

		case paint.Event:
			pending = false
			// Export failures are logged by the session and keep the viewer running.
			_ = s.Update()
			r.Draw(buf.RGBA(), s)
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()

			// Held keys keep animating the view.
			if s.Moving() {
				repaint()
			}

		case error:
			return xerrors.Errorf("window failure: %w", e)
		}
	}
}

var heldKeys = map[key.Code]lowpoly.Key{
	key.CodeEqualSign:   lowpoly.KeyZoomIn,
	key.CodeHyphenMinus: lowpoly.KeyZoomOut,
	key.CodeW:           lowpoly.KeyUp,
	key.CodeA:           lowpoly.KeyLeft,
	key.CodeS:           lowpoly.KeyDown,
	key.CodeD:           lowpoly.KeyRight,
}

// translateKey maps a keyboard event to a session event.
func translateKey(e key.Event) (lowpoly.Event, bool) {
	if k, ok := heldKeys[e.Code]; ok {
		switch e.Direction {
		case key.DirPress:
			return lowpoly.KeyChange{Key: k, Pressed: true}, true
		case key.DirRelease:
			return lowpoly.KeyChange{Key: k, Pressed: false}, true
		}
		return nil, false
	}
	if e.Direction != key.DirPress {
		return nil, false
	}

	switch e.Code {
	case key.CodeF:
		return lowpoly.ToggleFaces{}, true
	case key.CodeE:
		return lowpoly.ToggleEdges{}, true
	case key.CodeC:
		return lowpoly.ExportRequested{}, true
	}
	return nil, false
}
