package panel

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/itsmostafa/chartpanel/internal/metrics"
)

// State is the lifecycle state of a panel.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateSurfaceReady  State = "surface-ready"
	StateDisposed      State = "disposed"
)

// Deps are the collaborators a panel is built with.
type Deps struct {
	// Engine creates drawing surfaces (required)
	Engine Engine

	// Library is passed to scripts as `echarts`; defaults to Engine
	Library any

	// Publisher receives alerts published by scripts
	Publisher Publisher

	// Location is passed to scripts as `locationService`
	Location any

	// Timeout bounds each script run; zero means DefaultTimeout
	Timeout time.Duration

	Logger *slog.Logger
}

// Panel is the composition root of one mounted chart panel. It is not safe
// for concurrent use; hosts serialize Update and Close.
type Panel struct {
	id       string
	logger   *slog.Logger
	library  any
	location any

	surfaces *SurfaceManager
	executor *Executor
	tracker  *Tracker
	notifier *Notifier
	errors   ErrorSurface

	container *Container
	state     State
	mode      RenderMode

	props     Props
	committed bool

	// inputs of the last execution attempt
	ran         bool
	lastSurface string
	lastSource  string
	lastData    *QuerySnapshot
}

// New creates an unmounted panel. The surface is created by the first Update.
func New(deps Deps) (*Panel, error) {
	if deps.Engine == nil {
		return nil, errors.New("panel requires a rendering engine")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New().String()
	logger = logger.With("panel", id)

	library := deps.Library
	if library == nil {
		library = deps.Engine
	}

	executor := NewExecutor(logger)
	if deps.Timeout > 0 {
		executor.Timeout = deps.Timeout
	}

	p := &Panel{
		id:        id,
		logger:    logger,
		library:   library,
		location:  deps.Location,
		surfaces:  NewSurfaceManager(deps.Engine, logger),
		executor:  executor,
		tracker:   NewTracker(logger),
		notifier:  NewNotifier(deps.Publisher, logger),
		container: &Container{TestID: TestIDChart},
		state:     StateUninitialized,
	}
	p.surfaces.OnRecreate(func(_ Surface, err error) {
		if err != nil {
			p.state = StateUninitialized
			return
		}
		p.maybeExecute()
	})

	return p, nil
}

// ID returns the panel instance ID.
func (p *Panel) ID() string {
	return p.id
}

// State returns the lifecycle state.
func (p *Panel) State() State {
	return p.state
}

// Surface returns the live surface or nil.
func (p *Panel) Surface() Surface {
	return p.surfaces.Current()
}

// Err returns the error of the last execution attempt or nil.
func (p *Panel) Err() *ExecutionError {
	return p.errors.Current()
}

// Update commits a new set of host inputs. The surface is recreated when
// the render mode changed, resized when the size changed, and the script is
// executed when the surface, the script source or the data changed.
// Execution failures are reported through Err, not returned.
func (p *Panel) Update(props Props) error {
	if p.state == StateDisposed {
		return ErrDisposed
	}
	if props.Options.Renderer == "" {
		props.Options.Renderer = RendererCanvas
	}

	prev, hadPrev := p.props, p.committed
	p.props, p.committed = props, true
	p.container.Width = props.Width
	p.container.Height = props.Height

	mode := RenderMode{Renderer: props.Options.Renderer, Dark: props.Theme.IsDark}
	if p.surfaces.Current() == nil || mode != p.mode {
		if _, err := p.surfaces.Ensure(p.container, mode); err != nil {
			p.state = StateUninitialized
			return err
		}
		p.mode = mode
		p.state = StateSurfaceReady
	} else if hadPrev && (prev.Width != props.Width || prev.Height != props.Height) {
		p.surfaces.Resize(props.Width, props.Height)
	}

	p.maybeExecute()
	return nil
}

// Close releases the tracked subscription and disposes the surface. The
// panel cannot be updated afterwards.
func (p *Panel) Close() {
	if p.state == StateDisposed {
		return
	}

	p.tracker.Release()
	p.surfaces.Dispose()
	p.state = StateDisposed
	p.logger.Debug("panel disposed")
}

func (p *Panel) maybeExecute() {
	surface := p.surfaces.Current()
	if surface == nil {
		return
	}
	p.surfaces.BindRestore()

	source := p.props.Options.GetOption
	data := p.props.Data
	if p.ran && surface.ID() == p.lastSurface && source == p.lastSource && data == p.lastData {
		return
	}

	p.ran = true
	p.lastSurface = surface.ID()
	p.lastSource = source
	p.lastData = data

	p.execute(surface)
}

// execute runs one attempt. The previous release callback fires before the
// script runs; the chart keeps its last option when the attempt fails.
func (p *Panel) execute(surface Surface) {
	props := p.props
	if !props.Data.Ready() {
		metrics.Executions.WithLabelValues(metrics.ResultSkipped).Inc()
		p.logger.Debug("skipping execution until data is ready", "state", props.Data.State)
		return
	}

	p.tracker.Release()
	p.errors.Clear()

	result, err := p.executor.Execute(props.Options.GetOption, ExecutionContext{
		Data:             props.Data,
		Theme:            props.Theme,
		Surface:          surface,
		Library:          p.library,
		ReplaceVariables: props.ReplaceVariables,
		EventBus:         props.EventBus,
		Location:         p.location,
		NotifySuccess:    p.notifier.Success,
		NotifyError:      p.notifier.Error,
	})
	if err != nil {
		p.fail(err)
		return
	}

	p.tracker.Adopt(result.Unsubscribe)

	if err := Apply(surface, result); err != nil {
		p.fail(&ExecutionError{Kind: ErrorKindApply, Message: err.Error(), Err: err})
		return
	}

	metrics.Executions.WithLabelValues(metrics.ResultApplied).Inc()
	p.logger.Debug("option applied", "surface", surface.ID(), "version", result.Version)
}

func (p *Panel) fail(err error) {
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		execErr = &ExecutionError{Kind: ErrorKindRuntime, Message: err.Error(), Err: err}
	}

	p.errors.Set(execErr)
	metrics.Executions.WithLabelValues(metrics.ResultErrored).Inc()
	p.logger.Warn("getOption execution failed", "kind", execErr.Kind, "error", execErr.Message)
}
