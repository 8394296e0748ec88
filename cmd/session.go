package cmd

import (
	"fmt"
	"io"

	"github.com/itsmostafa/chartpanel/internal/config"
	"github.com/itsmostafa/chartpanel/internal/host"
	"github.com/itsmostafa/chartpanel/internal/panel"
	"github.com/itsmostafa/chartpanel/internal/render"
)

// EventDataRefresh is published on the bus after a new snapshot was loaded.
const EventDataRefresh = "data-refresh"

// sessionFlags are the host inputs shared by render and watch
type sessionFlags struct {
	dataFile string
	width    int
	height   int
	vars     []string
	location string
	dark     bool
	darkSet  bool
}

// session plays the dashboard host for one mounted panel
type session struct {
	flags   sessionFlags
	panel   *panel.Panel
	engine  *render.Engine
	bus     *host.Bus
	alerts  *host.AppEvents
	vars    host.Variables
	options config.PanelOptions
	data    *panel.QuerySnapshot
}

func newSession(flags sessionFlags, out io.Writer) (*session, error) {
	vars, err := host.ParseVariables(flags.vars)
	if err != nil {
		return nil, err
	}
	location, err := host.NewLocation(flags.location)
	if err != nil {
		return nil, err
	}

	s := &session{
		flags:  flags,
		engine: render.NewEngine(logger),
		bus:    host.NewBus(logger),
		alerts: host.NewAppEvents(),
		vars:   vars,
	}
	s.alerts.Listen(func(event panel.Event) {
		formatAlert(out, event)
	})

	if err := s.reloadOptions(); err != nil {
		return nil, err
	}
	if err := s.reloadData(); err != nil {
		return nil, err
	}

	p, err := panel.New(panel.Deps{
		Engine:    s.engine,
		Publisher: s.alerts,
		Location:  location,
		Timeout:   s.options.Timeout,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	s.panel = p

	return s, nil
}

func (s *session) reloadOptions() error {
	opts, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if s.flags.darkSet {
		opts.Dark = s.flags.dark
	}
	s.options = opts
	return nil
}

func (s *session) reloadData() error {
	if s.flags.dataFile == "" {
		s.data = &panel.QuerySnapshot{Series: []panel.DataFrame{}}
		return nil
	}
	data, err := host.LoadSnapshot(s.flags.dataFile)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

func (s *session) props() panel.Props {
	return panel.Props{
		Options:          s.options.Panel(),
		Data:             s.data,
		Width:            s.flags.width,
		Height:           s.flags.height,
		Theme:            s.options.Theme(),
		ReplaceVariables: s.vars.Replace,
		EventBus:         s.bus,
	}
}

// update commits the current inputs and renders the panel to out
func (s *session) update(out io.Writer) error {
	if err := s.panel.Update(s.props()); err != nil {
		return fmt.Errorf("failed to update panel: %w", err)
	}
	return s.panel.Render(out)
}

// restore emits the restore event on the live surface, as the chart toolbox does
func (s *session) restore() {
	if surface, ok := s.panel.Surface().(*render.Surface); ok {
		surface.Emit(panel.EventRestore)
	}
}

func (s *session) close() {
	if s.panel != nil {
		s.panel.Close()
	}
}
