// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termview

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/bureau-foundation/dynview/lib/inflate"
)

var (
	// ErrUnknownViewType is returned by Host.CreateView for a type
	// name the toolkit does not know.
	ErrUnknownViewType = errors.New("unknown view type")

	// ErrUnsupportedAttribute is returned by SetAttribute for a key
	// outside the attribute vocabulary.
	ErrUnsupportedAttribute = errors.New("unsupported attribute")

	// ErrInvalidValue is returned by SetAttribute for a value the
	// attribute does not accept.
	ErrInvalidValue = errors.New("invalid attribute value")

	// ErrLeafView is returned by AddChild on a view that cannot hold
	// children.
	ErrLeafView = errors.New("view cannot hold children")
)

// Kind groups view types by how they render.
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindButton
	KindImage
)

var viewTypes = map[string]Kind{
	"LinearLayout": KindContainer,
	"FrameLayout":  KindContainer,
	"ScrollView":   KindContainer,
	"TextView":     KindText,
	"Button":       KindButton,
	"ImageView":    KindImage,
}

// Types returns the supported view type names, sorted.
func Types() []string {
	return slices.Sorted(maps.Keys(viewTypes))
}

// Host creates termview views.
type Host struct{}

// NewHost returns a Host.
func NewHost() *Host { return &Host{} }

// CreateView creates an empty view of the named type.
func (host *Host) CreateView(viewType string) (inflate.View, error) {
	kind, ok := viewTypes[viewType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownViewType, viewType)
	}
	return &View{
		viewType:   viewType,
		kind:       kind,
		attributes: make(map[string]string),
		handlers:   make(map[string]func()),
	}, nil
}

// View is one terminal view. Attribute setters and Fire may be called
// from different goroutines.
type View struct {
	viewType string
	kind     Kind

	mutex      sync.Mutex
	id         int
	attributes map[string]string
	handlers   map[string]func()
	children   []*View
}

// Type returns the view's type name.
func (view *View) Type() string { return view.viewType }

// Kind returns the view's rendering kind.
func (view *View) Kind() Kind { return view.kind }

// ID returns the id assigned with SetID, or 0.
func (view *View) ID() int {
	view.mutex.Lock()
	defer view.mutex.Unlock()
	return view.id
}

// Attribute returns the current value of key.
func (view *View) Attribute(key string) (string, bool) {
	view.mutex.Lock()
	defer view.mutex.Unlock()
	value, ok := view.attributes[key]
	return value, ok
}

// Children returns the attached children in order.
func (view *View) Children() []*View {
	view.mutex.Lock()
	defer view.mutex.Unlock()
	return append([]*View(nil), view.children...)
}

// Events returns the events with an installed handler, sorted.
func (view *View) Events() []string {
	view.mutex.Lock()
	defer view.mutex.Unlock()
	return slices.Sorted(maps.Keys(view.handlers))
}

// SetAttribute validates and stores an attribute. An empty value
// removes the attribute.
func (view *View) SetAttribute(key, value string) error {
	validate, ok := lookupValidator(key)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedAttribute, key, view.viewType)
	}
	if value != "" {
		if err := validate(value); err != nil {
			return fmt.Errorf("%w: %s=%q on %s: %v", ErrInvalidValue, key, value, view.viewType, err)
		}
	}

	view.mutex.Lock()
	defer view.mutex.Unlock()
	if value == "" {
		delete(view.attributes, key)
	} else {
		view.attributes[key] = value
	}
	return nil
}

// SetID assigns the view id. Ids must be positive.
func (view *View) SetID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id %d on %s", ErrInvalidValue, id, view.viewType)
	}
	view.mutex.Lock()
	defer view.mutex.Unlock()
	view.id = id
	return nil
}

// SetEventHandler installs handler for event, replacing any previous
// handler for the same event.
func (view *View) SetEventHandler(event string, handler func()) error {
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %s", ErrInvalidValue, event)
	}
	view.mutex.Lock()
	defer view.mutex.Unlock()
	view.handlers[event] = handler
	return nil
}

// Fire runs the handler installed for event and reports whether one
// was installed. The handler runs without the view lock held, so it
// may modify the view.
func (view *View) Fire(event string) bool {
	view.mutex.Lock()
	handler, ok := view.handlers[event]
	view.mutex.Unlock()
	if !ok {
		return false
	}
	handler()
	return true
}

// AddChild attaches child, which must be a *View from this package.
func (view *View) AddChild(child inflate.View) error {
	if view.kind != KindContainer {
		return fmt.Errorf("%w: %s", ErrLeafView, view.viewType)
	}
	childView, ok := child.(*View)
	if !ok {
		return fmt.Errorf("cannot attach %T to a terminal view", child)
	}
	view.mutex.Lock()
	defer view.mutex.Unlock()
	view.children = append(view.children, childView)
	return nil
}

// FindByID returns the first view in the subtree, in document order,
// whose id is id.
func (view *View) FindByID(id int) (*View, bool) {
	if view.ID() == id {
		return view, true
	}
	for _, child := range view.Children() {
		if found, ok := child.FindByID(id); ok {
			return found, true
		}
	}
	return nil, false
}

type validator func(value string) error

var validators = map[string]validator{
	"text":               anyValue,
	"hint":               anyValue,
	"contentDescription": anyValue,
	"src":                anyValue,
	"textColor":          validateColor,
	"background":         validateColor,
	"textStyle":          validateTextStyle,
	"border":             oneOf("none", "normal", "rounded", "thick", "double", "hidden"),
	"padding":            validateNonNegative,
	"width":              validateWidth,
	"orientation":        oneOf("vertical", "horizontal"),
	"visibility":         oneOf("visible", "invisible", "gone"),
	"gravity":            oneOf("left", "center", "right"),
	"labelFor":           anyValue,
}

func lookupValidator(key string) (validator, bool) {
	if validate, ok := validators[key]; ok {
		return validate, true
	}
	if strings.HasPrefix(key, "layout_") || strings.HasPrefix(key, "nextFocus") {
		return anyValue, true
	}
	return nil, false
}

func anyValue(string) error { return nil }

func oneOf(allowed ...string) validator {
	return func(value string) error {
		if slices.Contains(allowed, value) {
			return nil
		}
		return fmt.Errorf("want one of %s", strings.Join(allowed, ", "))
	}
}

func validateColor(value string) error {
	if hex, ok := strings.CutPrefix(value, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return errors.New("hex colors have 3 or 6 digits")
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return errors.New("not a hex color")
		}
		return nil
	}
	index, err := strconv.Atoi(value)
	if err != nil || index < 0 || index > 255 {
		return errors.New("want #rgb, #rrggbb, or an ANSI index 0-255")
	}
	return nil
}

func validateTextStyle(value string) error {
	for _, part := range strings.Split(value, "|") {
		switch strings.TrimSpace(part) {
		case "normal", "bold", "italic", "underline":
		default:
			return fmt.Errorf("unknown text style %q", part)
		}
	}
	return nil
}

func validateNonNegative(value string) error {
	number, err := strconv.Atoi(value)
	if err != nil || number < 0 {
		return errors.New("want a non-negative integer")
	}
	return nil
}

func validateWidth(value string) error {
	if value == "match_parent" || value == "wrap_content" {
		return nil
	}
	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return errors.New("want a positive integer, match_parent, or wrap_content")
	}
	return nil
}
