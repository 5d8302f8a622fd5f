// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package action

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/dynview/lib/property"
)

type attributeView struct {
	attributes map[string]string
}

func newAttributeView() *attributeView {
	return &attributeView{attributes: make(map[string]string)}
}

func (view *attributeView) SetAttribute(key, value string) error {
	if key == "locked" {
		return errors.New("locked attribute")
	}
	view.attributes[key] = value
	return nil
}

func (view *attributeView) SetID(int) error { return nil }

func (view *attributeView) SetEventHandler(string, func()) error { return nil }

func TestDispatchRegistered(t *testing.T) {
	registry := NewRegistry(nil)
	var got []string
	registry.Register("openProfile", func(params []string, view property.Builder) error {
		got = params
		return nil
	})
	if err := registry.Dispatch("openProfile", []string{"7"}, newAttributeView()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if diff := cmp.Diff([]string{"7"}, got); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestDispatchUnknown(t *testing.T) {
	registry := NewRegistry(nil)
	err := registry.Dispatch("missing", nil, newAttributeView())
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Dispatch = %v, want ErrUnknownAction", err)
	}
}

func TestDispatchFallback(t *testing.T) {
	registry := NewRegistry(nil)
	var seen string
	registry.SetFallback(func(action string, params []string, view property.Builder) error {
		seen = action
		return nil
	})
	if err := registry.Dispatch("anything", nil, newAttributeView()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if seen != "anything" {
		t.Errorf("fallback saw %q", seen)
	}

	registry.SetFallback(nil)
	if err := registry.Dispatch("anything", nil, newAttributeView()); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("after removing fallback: %v", err)
	}
}

func TestDispatchWrapsHandlerError(t *testing.T) {
	registry := NewRegistry(nil)
	failure := errors.New("backend down")
	registry.Register("save", func([]string, property.Builder) error { return failure })
	err := registry.Dispatch("save", nil, newAttributeView())
	if !errors.Is(err, failure) {
		t.Fatalf("Dispatch = %v, want wrapped failure", err)
	}
	if !strings.Contains(err.Error(), "save") {
		t.Errorf("error %q does not name the action", err)
	}
}

func TestDispatchLogs(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registry := NewRegistry(logger)
	registry.Register("ping", func([]string, property.Builder) error { return nil })
	registry.Dispatch("ping", []string{"a"}, newAttributeView())
	if !strings.Contains(buffer.String(), "action=ping") {
		t.Errorf("log output missing action: %s", buffer.String())
	}
}

func TestNames(t *testing.T) {
	registry := NewRegistry(nil)
	RegisterBuiltins(registry, nil)
	if diff := cmp.Diff([]string{"log", "set", "toggle"}, registry.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
}

func TestBuiltinSet(t *testing.T) {
	registry := NewRegistry(nil)
	RegisterBuiltins(registry, nil)
	view := newAttributeView()
	if err := registry.Dispatch("set", []string{"text", "done"}, view); err != nil {
		t.Fatalf("set: %v", err)
	}
	if view.attributes["text"] != "done" {
		t.Errorf("text = %q", view.attributes["text"])
	}
	if err := registry.Dispatch("set", []string{"text"}, view); err == nil {
		t.Error("set with one parameter succeeded")
	}
	if err := registry.Dispatch("set", []string{"locked", "x"}, view); err == nil {
		t.Error("set ignored the view's rejection")
	}
}

func TestBuiltinToggle(t *testing.T) {
	registry := NewRegistry(nil)
	RegisterBuiltins(registry, nil)
	first, second := newAttributeView(), newAttributeView()
	params := []string{"text", "on", "off"}

	var got []string
	for range 3 {
		registry.Dispatch("toggle", params, first)
		got = append(got, first.attributes["text"])
	}
	registry.Dispatch("toggle", params, second)
	got = append(got, second.attributes["text"])

	if diff := cmp.Diff([]string{"on", "off", "on", "on"}, got); diff != "" {
		t.Errorf("toggle sequence (-want +got):\n%s", diff)
	}
}
