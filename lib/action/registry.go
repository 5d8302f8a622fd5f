// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package action

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/bureau-foundation/dynview/lib/property"
)

// ErrUnknownAction is returned by Dispatch when no handler is
// registered under the action name and no fallback is set.
var ErrUnknownAction = errors.New("unknown action")

// HandlerFunc handles one dispatched action. view is the view whose
// event fired.
type HandlerFunc func(params []string, view property.Builder) error

// FallbackFunc handles actions with no registered handler.
type FallbackFunc func(action string, params []string, view property.Builder) error

// Registry maps action names to handlers. It is safe for concurrent
// use; handlers may be registered while events fire.
type Registry struct {
	logger *slog.Logger

	mutex    sync.RWMutex
	handlers map[string]HandlerFunc
	fallback FallbackFunc
}

// NewRegistry creates an empty registry. A nil logger discards.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{logger: logger, handlers: make(map[string]HandlerFunc)}
}

// Register installs handler under name, replacing any previous one.
func (registry *Registry) Register(name string, handler HandlerFunc) {
	if name == "" || handler == nil {
		panic("action: Register requires a name and a handler")
	}
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.handlers[name] = handler
}

// SetFallback installs a handler for unregistered names. nil removes
// it.
func (registry *Registry) SetFallback(fallback FallbackFunc) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.fallback = fallback
}

// Names returns the registered action names, sorted.
func (registry *Registry) Names() []string {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	return slices.Sorted(maps.Keys(registry.handlers))
}

// Dispatch runs the handler registered for action.
func (registry *Registry) Dispatch(action string, params []string, view property.Builder) error {
	registry.mutex.RLock()
	handler, ok := registry.handlers[action]
	fallback := registry.fallback
	registry.mutex.RUnlock()

	registry.logger.Debug("dispatching action",
		"action", action,
		"params", params,
		"registered", ok,
	)

	var err error
	switch {
	case ok:
		err = handler(params, view)
	case fallback != nil:
		err = fallback(action, params, view)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}
	return nil
}

var _ property.Processor = (*Registry)(nil)
