// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/viewid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		key, value string
		want       Kind
	}{
		{"onClick", "open(${row.id})", KindDynamicAction},
		{"onClick", "submit()", KindAction},
		{"text", "Hello ${user.name}", KindDynamic},
		{"text", "Hello", KindStatic},
		{"below", "@title", KindStatic},
		{"online", "${status}", KindDynamic},
		{"one", "submit()", KindStatic},
		{"name", "${row.id}", KindStatic},
	}
	for _, test := range tests {
		if got := Classify(test.key, test.value); got != test.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", test.key, test.value, got, test.want)
		}
	}
}

func TestAddExactlyOneKind(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)

	attributes := [][2]string{
		{"text", "Hello"},
		{"text", "Hello ${user.name}"},
		{"text", "Bye"},
		{"onClick", "submit()"},
		{"onClick", "open(${row.id})"},
		{"onClick", "close()"},
		{"color", "${theme.color}"},
	}
	for _, attribute := range attributes {
		node.Add(attribute[0], attribute[1])

		count := 0
		for _, kind := range []Kind{KindStatic, KindDynamic, KindAction, KindDynamicAction} {
			for _, key := range node.Keys(kind) {
				if key == attribute[0] {
					count++
				}
			}
		}
		if count != 1 {
			t.Errorf("after Add(%q, %q): key present in %d maps, want 1", attribute[0], attribute[1], count)
		}
		want := Classify(attribute[0], attribute[1])
		if got, _ := node.Kind(attribute[0]); got != want {
			t.Errorf("after Add(%q, %q): Kind = %v, want %v", attribute[0], attribute[1], got, want)
		}
	}

	if node.Len() != 3 {
		t.Errorf("Len = %d, want 3", node.Len())
	}
}

func TestAddEmptyIgnored(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)

	node.Add("", "x")
	node.Add("x", "")
	node.Add("", "")

	if node.Len() != 0 {
		t.Errorf("Len = %d after empty adds, want 0", node.Len())
	}
	want := []IssueKind{IssueEmptyAttribute, IssueEmptyAttribute, IssueEmptyAttribute}
	if diff := cmp.Diff(want, recorder.kinds()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestNameBecomesID(t *testing.T) {
	registry := viewid.NewRegistry()
	for _, value := range []string{"title", "${row.id}", "@other", "onClick"} {
		node := NewNodeProperties(registry, nil)
		node.Add("name", value)

		if _, exists := node.Get("name"); exists {
			t.Errorf("Add(name, %q): Get(name) present", value)
		}
		got, exists := node.Get("id")
		want := strconv.Itoa(registry.Allocate(value))
		if !exists || got != want {
			t.Errorf("Add(name, %q): Get(id) = %q, %v; want %q", value, got, exists, want)
		}
	}
}

// Node A declares name=title, node B references @title.
func TestNameThenReference(t *testing.T) {
	registry := viewid.NewRegistry()
	nodeA := NewNodeProperties(registry, nil)
	nodeB := NewNodeProperties(registry, nil)

	nodeA.Add("name", "title")
	nodeB.Add("below", "@title")

	id := strconv.Itoa(registry.Allocate("title"))
	if got, _ := nodeA.Get("id"); got != id {
		t.Errorf("A id = %q, want %q", got, id)
	}
	if got, _ := nodeB.Get("below"); got != id {
		t.Errorf("B below = %q, want %q", got, id)
	}
}

func TestForwardReferenceDropped(t *testing.T) {
	registry := viewid.NewRegistry()
	recorder := &issueRecorder{}
	nodeB := NewNodeProperties(registry, recorder)
	nodeA := NewNodeProperties(registry, recorder)

	nodeB.Add("below", "@title")
	nodeA.Add("name", "title")

	if _, exists := nodeB.Get("below"); exists {
		t.Error("forward reference produced an entry")
	}
	if _, exists := nodeB.Kind("below"); exists {
		t.Error("forward reference stored under some kind")
	}
	if diff := cmp.Diff([]IssueKind{IssueUnresolvedReference}, recorder.kinds()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	if registry.Contains("") || registry.Len() != 1 {
		t.Errorf("reference check allocated names: %v", registry.Names())
	}
}

func TestDroppedReferenceKeepsPreviousEntry(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("below", "40dp")
	node.Add("below", "@missing")

	if got, _ := node.Get("below"); got != "40dp" {
		t.Errorf("below = %q, want previous value kept", got)
	}
}

func TestStaticLiteral(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("text", "Hello")

	if got, exists := node.Get("text"); !exists || got != "Hello" {
		t.Errorf("Get(text) = %q, %v", got, exists)
	}

	builder := newRecordingBuilder()
	node.ApplyStatic(builder)
	if builder.attributes["text"] != "Hello" {
		t.Errorf("builder text = %q", builder.attributes["text"])
	}
}

func TestGetOnlySeesStatics(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("text", "Hello ${user.name}")
	node.Add("onClick", "submit()")
	node.Add("onLongPress", "open(${row.id})")

	for _, key := range []string{"text", "onClick", "onLongPress"} {
		if _, exists := node.Get(key); exists {
			t.Errorf("Get(%q) visible", key)
		}
	}
}

func TestApplyStaticIDUsesSetID(t *testing.T) {
	registry := viewid.NewRegistry()
	registry.Allocate("header")
	node := NewNodeProperties(registry, nil)
	node.Add("name", "title")
	node.Add("below", "@header")

	builder := newRecordingBuilder()
	node.ApplyStatic(builder)

	if builder.id != 2 {
		t.Errorf("SetID = %d, want 2", builder.id)
	}
	if builder.attributes["below"] != "1" {
		t.Errorf("below = %q, want 1", builder.attributes["below"])
	}
	if _, exists := builder.attributes["id"]; exists {
		t.Error("id applied as an attribute")
	}
}

func TestDynamicProperty(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("text", "Hello ${user.name}")

	builder := newRecordingBuilder()
	processor := &recordingProcessor{}

	node.ApplyDynamic(builder, processor, binding.MapRecord{"user.name": "Ada"})
	if builder.attributes["text"] != "Hello Ada" {
		t.Errorf("text = %q, want %q", builder.attributes["text"], "Hello Ada")
	}

	node.ApplyDynamic(builder, processor, binding.MapRecord{"user.name": "Bob"})
	if builder.attributes["text"] != "Hello Bob" {
		t.Errorf("text = %q, want %q", builder.attributes["text"], "Hello Bob")
	}
	if len(builder.handlers) != 0 {
		t.Errorf("dynamic property installed handlers: %v", builder.installs)
	}
}

func TestDynamicPropertyMissingClears(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)
	node.Add("text", "${user.name}")

	builder := newRecordingBuilder()
	node.ApplyDynamic(builder, nil, binding.MapRecord{"user.name": "Ada"})
	node.ApplyDynamic(builder, nil, binding.MapRecord{})

	value, exists := builder.attributes["text"]
	if !exists || value != "" {
		t.Errorf("text = %q, %v; want cleared", value, exists)
	}
	if len(recorder.issues) != 1 || recorder.issues[0].Kind != IssueExpressionMiss {
		t.Fatalf("issues = %+v, want one expression miss", recorder.issues)
	}
	if diff := cmp.Diff([]string{"user.name"}, recorder.issues[0].Paths); diff != "" {
		t.Errorf("miss paths mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDynamicIdempotent(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("text", "Hello ${user.name}")
	node.Add("color", "${user.color}")

	record := binding.MapRecord{"user.name": "Ada", "user.color": "red"}

	once := newRecordingBuilder()
	node.ApplyDynamic(once, nil, record)

	twice := newRecordingBuilder()
	node.ApplyDynamic(twice, nil, record)
	node.ApplyDynamic(twice, nil, record)

	if diff := cmp.Diff(once.attributes, twice.attributes); diff != "" {
		t.Errorf("state differs after double apply (-once +twice):\n%s", diff)
	}
}

func TestStaticAction(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("onClick", "submit()")

	builder := newRecordingBuilder()
	processor := &recordingProcessor{}
	node.ApplyActions(builder, processor)

	if builder.installs["onClick"] != 1 {
		t.Fatalf("installs = %d, want 1", builder.installs["onClick"])
	}
	builder.fire("onClick")

	if len(processor.calls) != 1 {
		t.Fatalf("dispatches = %d, want 1", len(processor.calls))
	}
	call := processor.calls[0]
	if call.Action != "submit" || len(call.Params) != 0 || call.View != Builder(builder) {
		t.Errorf("dispatched %+v", call)
	}
}

func TestStaticActionLiteralParams(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("onClick", "navigate('home', 2)")

	builder := newRecordingBuilder()
	processor := &recordingProcessor{}
	node.ApplyActions(builder, processor)
	builder.fire("onClick")
	builder.fire("onClick")

	if len(processor.calls) != 2 {
		t.Fatalf("dispatches = %d, want 2", len(processor.calls))
	}
	for _, call := range processor.calls {
		if diff := cmp.Diff([]string{"home", "2"}, call.Params); diff != "" {
			t.Errorf("params mismatch (-want +got):\n%s", diff)
		}
	}
}

// The same view is bound to two rows; firing after the second bind
// must dispatch the second row's id only.
func TestDynamicActionAcrossRecycling(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("onClick", "open(${row.id})")

	builder := newRecordingBuilder()
	processor := &recordingProcessor{}

	node.ApplyDynamic(builder, processor, binding.MapRecord{"row.id": "7"})
	node.ApplyDynamic(builder, processor, binding.MapRecord{"row.id": "9"})
	builder.fire("onClick")

	want := []dispatched{{Action: "open", Params: []string{"9"}, View: builder}}
	if diff := cmp.Diff(want, processor.calls, cmp.Comparer(func(a, b Builder) bool { return a == b })); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicActionEvaluatesAtFireTime(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("onClick", "open(${row.id}, ${row.kind})")

	builder := newRecordingBuilder()
	processor := &recordingProcessor{}
	recorder := &issueRecorder{}
	node.observer = recorder

	node.ApplyDynamic(builder, processor, binding.JSONRecord{"row": map[string]any{"id": "3"}})
	if len(processor.calls) != 0 {
		t.Fatal("binding dispatched an action")
	}
	builder.fire("onClick")

	if diff := cmp.Diff([]string{"3", ""}, processor.calls[0].Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]IssueKind{IssueExpressionMiss}, recorder.kinds()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicPropertiesBeforeDynamicActions(t *testing.T) {
	node := NewNodeProperties(viewid.NewRegistry(), nil)
	node.Add("onClick", "open(${row.id})")
	node.Add("text", "${row.title}")
	node.Add("alpha", "${row.alpha}")

	builder := newRecordingBuilder()
	node.ApplyDynamic(builder, nil, binding.MapRecord{"row.id": "1", "row.title": "x", "row.alpha": "1"})

	want := []string{"attr alpha=1", "attr text=x", "handler onClick"}
	if diff := cmp.Diff(want, builder.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderRejectContinues(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)
	node.Add("a", "1")
	node.Add("b", "2")
	node.Add("c", "3")

	builder := newRecordingBuilder()
	builder.reject["b"] = true
	node.ApplyStatic(builder)

	if builder.attributes["a"] != "1" || builder.attributes["c"] != "3" {
		t.Errorf("remaining attributes not applied: %v", builder.attributes)
	}
	if len(recorder.issues) != 1 || recorder.issues[0].Kind != IssueBuilderReject || recorder.issues[0].Key != "b" {
		t.Errorf("issues = %+v, want one builder reject for b", recorder.issues)
	}
}

func TestBadActionReported(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)
	node.Add("onClick", "open(")
	node.Add("onLongPress", "open(${row.id}")
	node.Add("onFocus", "focus()")

	builder := newRecordingBuilder()
	node.ApplyActions(builder, nil)
	node.ApplyDynamic(builder, nil, binding.MapRecord{})

	if _, installed := builder.handlers["onClick"]; installed {
		t.Error("malformed static action installed")
	}
	if _, installed := builder.handlers["onLongPress"]; installed {
		t.Error("malformed dynamic action installed")
	}
	if _, installed := builder.handlers["onFocus"]; !installed {
		t.Error("valid action not installed after a malformed one")
	}
	want := []IssueKind{IssueBadAction, IssueBadAction}
	if diff := cmp.Diff(want, recorder.kinds()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	for _, issue := range recorder.issues {
		if !errors.Is(issue.Err, binding.ErrMalformedAction) {
			t.Errorf("issue error %v does not wrap ErrMalformedAction", issue.Err)
		}
	}
}

func TestDispatchFailureRecovered(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)
	node.Add("onClick", "submit()")
	node.Add("onLongPress", "explode()")

	builder := newRecordingBuilder()
	processor := ProcessorFunc(func(action string, params []string, view Builder) error {
		if action == "explode" {
			panic("boom")
		}
		return errors.New("unknown action")
	})
	node.ApplyActions(builder, processor)

	builder.fire("onClick")
	builder.fire("onLongPress")

	want := []IssueKind{IssueDispatchFailure, IssueDispatchFailure}
	if diff := cmp.Diff(want, recorder.kinds()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if recorder.issues[1].Value != "explode" {
		t.Errorf("panic issue value = %q", recorder.issues[1].Value)
	}
}

func TestNilProcessorReported(t *testing.T) {
	recorder := &issueRecorder{}
	node := NewNodeProperties(viewid.NewRegistry(), recorder)
	node.Add("onClick", "submit()")

	builder := newRecordingBuilder()
	node.ApplyActions(builder, nil)
	builder.fire("onClick")

	if diff := cmp.Diff([]IssueKind{IssueDispatchFailure}, recorder.kinds()); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestHasDynamic(t *testing.T) {
	node := NewNodeProperties(nil, nil)
	node.Add("text", "static")
	node.Add("onClick", "submit()")
	if node.HasDynamic() {
		t.Error("HasDynamic with only static content")
	}
	node.Add("title", "${row.title}")
	if !node.HasDynamic() {
		t.Error("HasDynamic = false with a dynamic property")
	}
}
