// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package action

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/dynview/lib/property"
)

// RegisterBuiltins installs the actions every dynview host provides:
//
//	log(message...)      logs the parameters at Info
//	set(key, value)      sets an attribute on the firing view
//	toggle(key, a, b)    flips an attribute between a and b
//
// toggle needs to read the current value, which a Builder cannot do,
// so it tracks the last value it set per view.
func RegisterBuiltins(registry *Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry.Register("log", func(params []string, view property.Builder) error {
		logger.Info("view action", "params", params)
		return nil
	})

	registry.Register("set", func(params []string, view property.Builder) error {
		if len(params) != 2 {
			return fmt.Errorf("set takes (key, value), got %d parameters", len(params))
		}
		return view.SetAttribute(params[0], params[1])
	})

	var toggleMutex sync.Mutex
	toggled := make(map[property.Builder]map[string]bool)
	registry.Register("toggle", func(params []string, view property.Builder) error {
		if len(params) != 3 {
			return fmt.Errorf("toggle takes (key, first, second), got %d parameters", len(params))
		}
		toggleMutex.Lock()
		state := toggled[view]
		if state == nil {
			state = make(map[string]bool)
			toggled[view] = state
		}
		state[params[0]] = !state[params[0]]
		useFirst := state[params[0]]
		toggleMutex.Unlock()

		if useFirst {
			return view.SetAttribute(params[0], params[1])
		}
		return view.SetAttribute(params[0], params[2])
	})
}
