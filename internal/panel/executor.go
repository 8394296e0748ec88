package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/itsmostafa/chartpanel/internal/metrics"
)

// ParamNames are the parameter names bound positionally to the getOption
// function body. The order is part of the script contract.
var ParamNames = []string{
	"data",
	"theme",
	"echartsInstance",
	"echarts",
	"replaceVariables",
	"eventBus",
	"locationService",
	"notifySuccess",
	"notifyError",
}

// ExecutionContext holds the values passed to the getOption function, in
// ParamNames order.
type ExecutionContext struct {
	Data             *QuerySnapshot
	Theme            Theme
	Surface          Surface
	Library          any
	ReplaceVariables func(string) string
	EventBus         EventBus
	Location         any
	NotifySuccess    func(payload any)
	NotifyError      func(payload any)
}

func (c ExecutionContext) args() []any {
	data := c.Data
	if data == nil {
		data = &QuerySnapshot{Series: []DataFrame{}}
	}
	replace := c.ReplaceVariables
	if replace == nil {
		replace = func(s string) string { return s }
	}
	notifySuccess, notifyError := c.NotifySuccess, c.NotifyError
	if notifySuccess == nil {
		notifySuccess = func(any) {}
	}
	if notifyError == nil {
		notifyError = func(any) {}
	}

	return []any{
		data,
		c.Theme,
		c.Surface,
		c.Library,
		replace,
		c.EventBus,
		c.Location,
		notifySuccess,
		notifyError,
	}
}

// CodeResult is the normalized value returned by a getOption script.
type CodeResult struct {
	// Version is 2 for results tagged with version: 2, 1 otherwise
	Version int

	// Option is the chart option, nil when the script returned none
	Option Option

	// Config overrides the apply mode (version 2 only)
	Config *ApplyConfig

	// Unsubscribe releases subscriptions made by the script (version 2 only)
	Unsubscribe ReleaseFunc
}

// DefaultTimeout bounds a single getOption run. It only stops scripts that
// never return.
const DefaultTimeout = 30 * time.Second

// Executor runs getOption scripts in a sandboxed goja runtime.
type Executor struct {
	// Timeout interrupts runs that take longer; zero disables the bound
	Timeout time.Duration

	logger *slog.Logger
}

// NewExecutor creates a new executor bounded by DefaultTimeout.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{Timeout: DefaultTimeout, logger: logger}
}

// Execute compiles source as the body of a function taking ParamNames and
// calls it with the values of ectx. Compile failures and thrown exceptions
// are returned as *ExecutionError.
func (e *Executor) Execute(source string, ectx ExecutionContext) (result *CodeResult, err error) {
	start := time.Now()
	defer func() {
		metrics.ExecutionDuration.Observe(time.Since(start).Seconds())
	}()

	// Create a new goja runtime for each execution (isolation)
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	// The runtime outlives the run through release callbacks and bus
	// handlers, so a late interrupt must not stay pending on it
	if e.Timeout > 0 {
		timer := time.AfterFunc(e.Timeout, func() {
			vm.Interrupt(fmt.Sprintf("execution timeout after %s", e.Timeout))
		})
		defer func() {
			timer.Stop()
			vm.ClearInterrupt()
		}()
	}

	prg, err := goja.Compile("getOption", wrapSource(source), false)
	if err != nil {
		return nil, &ExecutionError{Kind: ErrorKindConstruction, Message: err.Error(), Err: err}
	}

	// Go callbacks invoked by the script may panic
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ExecutionError{
				Kind:    ErrorKindRuntime,
				Message: fmt.Sprint(r),
				Err:     fmt.Errorf("panic during execution: %v", r),
			}
		}
	}()

	fnValue, err := vm.RunProgram(prg)
	if err != nil {
		return nil, toExecutionError(ErrorKindConstruction, err)
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return nil, &ExecutionError{Kind: ErrorKindConstruction, Message: "getOption is not a function"}
	}

	values := ectx.args()
	args := make([]goja.Value, len(values))
	for i, v := range values {
		args[i] = vm.ToValue(v)
	}

	val, err := fn(goja.Undefined(), args...)
	if err != nil {
		return nil, toExecutionError(ErrorKindRuntime, err)
	}

	return e.decodeResult(vm, val), nil
}

func wrapSource(source string) string {
	var b strings.Builder
	b.WriteString("(function(")
	b.WriteString(strings.Join(ParamNames, ", "))
	b.WriteString(") {\n")
	b.WriteString(source)
	b.WriteString("\n})")
	return b.String()
}

func toExecutionError(kind ErrorKind, err error) *ExecutionError {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return &ExecutionError{
			Kind:    ErrorKindRuntime,
			Message: fmt.Sprintf("execution interrupted: %v", interrupted.Value()),
			Stack:   interrupted.String(),
			Err:     err,
		}
	}

	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return &ExecutionError{Kind: kind, Message: err.Error(), Err: err}
	}

	var message, stack string
	if obj, ok := ex.Value().(*goja.Object); ok {
		if m := obj.Get("message"); isPresent(m) {
			message = m.String()
		}
		if s := obj.Get("stack"); isPresent(s) {
			stack = s.String()
		}
	}
	if message == "" && ex.Value() != nil {
		message = ex.Value().String()
	}
	if stack == "" {
		stack = ex.String()
	}

	return &ExecutionError{Kind: kind, Message: message, Stack: stack, Err: err}
}

// decodeResult turns the script return value into a CodeResult. Results
// tagged with version 2 follow the versioned contract, anything else is
// treated as a raw option.
func (e *Executor) decodeResult(vm *goja.Runtime, val goja.Value) *CodeResult {
	obj, ok := val.(*goja.Object)
	if !ok {
		return &CodeResult{Version: 1}
	}

	if v := obj.Get("version"); v != nil && v.StrictEquals(vm.ToValue(2)) {
		result := &CodeResult{
			Version: 2,
			Option:  exportOption(obj.Get("option")),
			Config:  decodeApplyConfig(obj.Get("config")),
		}
		if fn, ok := goja.AssertFunction(obj.Get("unsubscribe")); ok {
			result.Unsubscribe = e.releaseFunc(fn)
		}
		return result
	}

	return &CodeResult{Version: 1, Option: exportOption(obj)}
}

func (e *Executor) releaseFunc(fn goja.Callable) ReleaseFunc {
	return func() {
		if _, err := fn(goja.Undefined()); err != nil {
			e.logger.Warn("unsubscribe failed", "error", err)
		}
	}
}

func exportOption(v goja.Value) Option {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}

	switch m := obj.Export().(type) {
	case map[string]any:
		return Option(m)
	case Option:
		return m
	default:
		return nil
	}
}

func decodeApplyConfig(v goja.Value) *ApplyConfig {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}

	return &ApplyConfig{
		NotMerge:     truthy(obj.Get("notMerge")),
		ReplaceMerge: stringList(obj.Get("replaceMerge")),
		LazyUpdate:   truthy(obj.Get("lazyUpdate")),
		Silent:       truthy(obj.Get("silent")),
	}
}

func stringList(v goja.Value) []string {
	if !isPresent(v) {
		return nil
	}

	switch exported := v.Export().(type) {
	case string:
		return []string{exported}
	case []any:
		list := make([]string, 0, len(exported))
		for _, item := range exported {
			list = append(list, fmt.Sprint(item))
		}
		return list
	default:
		return nil
	}
}

func truthy(v goja.Value) bool {
	return v != nil && v.ToBoolean()
}

func isPresent(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}
