package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/plugin"
)

var (
	// ErrNoHandler is returned by Call when the script does not define the event handler.
	ErrNoHandler = errors.New("hook has no handler for event")
	// ErrClosed is returned when a hook is used after shutdown.
	ErrClosed = errors.New("hook is closed")
)

const (
	loadConfigFunc = "load_config"
	handlerPrefix  = "on_"
)

// Loader loads hook scripts. It implements plugin.UnitLoader.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load executes the script at path and returns it as a plugin named name.
func (l *Loader) Load(name, path string) (plugin.Plugin, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(state)

	err := state.DoFile(path)
	if err != nil {
		state.Close()

		return nil, fmt.Errorf("executing hook %s: %w", path, err)
	}

	return &Hook{name: name, path: path, state: state}, nil
}

// openLibraries opens the Lua libraries a hook may use. io, os, debug and
// package are left out.
func openLibraries(state *lua.LState) {
	lua.OpenBase(state)
	lua.OpenTable(state)
	lua.OpenString(state)
	lua.OpenMath(state)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		state.SetGlobal(name, lua.LNil)
	}
}

// Hook is a plugin implemented by a Lua script.
//
// The script may define load_config(options, source_path) returning two
// lists of {key, message} pairs, the errors and the warnings, and event
// handlers named on_<event>. on_startup and on_shutdown take part in the
// application lifecycle.
type Hook struct {
	name string
	path string

	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// Name returns the hook name.
func (h *Hook) Name() string {
	return h.name
}

// Path returns the script path.
func (h *Hook) Path() string {
	return h.path
}

// LoadConfig calls load_config when the script defines it.
func (h *Hook) LoadConfig(options map[string]any, sourcePath string) ([]config.Issue, []config.Issue) {
	results, err := h.call(context.Background(), loadConfigFunc, options, sourcePath)

	switch {
	case errors.Is(err, ErrNoHandler):
		return nil, nil
	case err != nil:
		return []config.Issue{{Message: err.Error(), Err: err}}, nil
	}

	var errs, warnings []config.Issue

	if len(results) > 0 {
		errs = toIssues(results[0])
	}

	if len(results) > 1 {
		warnings = toIssues(results[1])
	}

	return errs, warnings
}

// Call calls the handler on_<event> with args and returns its results.
func (h *Hook) Call(ctx context.Context, event string, args ...any) ([]any, error) {
	return h.call(ctx, handlerPrefix+event, args...)
}

// OnStartup calls on_startup when the script defines it.
func (h *Hook) OnStartup(ctx context.Context) error {
	_, err := h.Call(ctx, "startup")
	if err != nil && !errors.Is(err, ErrNoHandler) {
		return err
	}

	return nil
}

// OnShutdown calls on_shutdown when the script defines it and releases the
// Lua state. Later calls do nothing.
func (h *Hook) OnShutdown(ctx context.Context) error {
	_, err := h.Call(ctx, "shutdown")
	if errors.Is(err, ErrNoHandler) || errors.Is(err, ErrClosed) {
		err = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.closed {
		h.closed = true
		h.state.Close()
	}

	return err
}

func (h *Hook) call(ctx context.Context, function string, args ...any) ([]any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	fn, ok := h.state.GetGlobal(function).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, function)
	}

	h.state.SetContext(ctx)
	defer h.state.RemoveContext()

	top := h.state.GetTop()

	h.state.Push(fn)

	for _, arg := range args {
		h.state.Push(toLua(h.state, arg))
	}

	err := h.state.PCall(len(args), lua.MultRet, nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s in hook %s: %w", function, h.name, err)
	}

	count := h.state.GetTop() - top
	results := make([]any, count)

	for i := range count {
		results[i] = toGo(h.state.Get(top + i + 1))
	}

	h.state.Pop(count)

	return results, nil
}

// toIssues reads a list of {key, message} pairs. Tables with key and message
// fields are accepted as well.
func toIssues(value any) []config.Issue {
	list, ok := value.([]any)
	if !ok {
		return nil
	}

	issues := make([]config.Issue, 0, len(list))

	for _, item := range list {
		switch entry := item.(type) {
		case []any:
			if len(entry) == 2 { //nolint:mnd // key and message
				issues = append(issues, config.Issue{Key: fmt.Sprint(entry[0]), Message: fmt.Sprint(entry[1])})
			}
		case map[string]any:
			issues = append(issues, config.Issue{Key: fmt.Sprint(entry["key"]), Message: fmt.Sprint(entry["message"])})
		case string:
			issues = append(issues, config.Issue{Message: entry})
		}
	}

	return issues
}
