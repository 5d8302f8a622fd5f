// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedAction is wrapped by every ParseAction failure.
var ErrMalformedAction = errors.New("malformed action descriptor")

// eventKeyPrefix starts every event key. The character after it must
// be an uppercase letter ("onClick", not "one" or "on").
const eventKeyPrefix = "on"

// IsEventKey reports whether key names an event slot.
func IsEventKey(key string) bool {
	if !strings.HasPrefix(key, eventKeyPrefix) {
		return false
	}
	next, size := utf8.DecodeRuneInString(key[len(eventKeyPrefix):])
	return size > 0 && unicode.IsUpper(next)
}

// Action is a parsed action descriptor: an action name plus parameter
// templates. For static actions every parameter is a plain literal.
type Action struct {
	Name   string
	Params []Template
}

// ParseAction parses an action descriptor of the form
//
//	name
//	name()
//	name(param, 'quoted, param', ${row.id})
//
// Parameters are separated by commas outside quotes and outside ${...}
// placeholders. Surrounding whitespace is trimmed and a single pair of
// matching single or double quotes is removed. The name itself must
// not contain a placeholder.
func ParseAction(raw string) (Action, error) {
	text := strings.TrimSpace(raw)
	open := strings.IndexByte(text, '(')
	if open < 0 {
		if err := validateActionName(text, raw); err != nil {
			return Action{}, err
		}
		return Action{Name: text}, nil
	}
	if !strings.HasSuffix(text, ")") {
		return Action{}, fmt.Errorf("%w: %q has no closing parenthesis", ErrMalformedAction, raw)
	}

	name := strings.TrimSpace(text[:open])
	if err := validateActionName(name, raw); err != nil {
		return Action{}, err
	}

	params, err := splitParams(text[open+1:len(text)-1], raw)
	if err != nil {
		return Action{}, err
	}

	action := Action{Name: name}
	for _, param := range params {
		action.Params = append(action.Params, ParseTemplate(param))
	}
	return action, nil
}

func validateActionName(name, raw string) error {
	if name == "" {
		return fmt.Errorf("%w: %q has no action name", ErrMalformedAction, raw)
	}
	if IsDynamic(name) {
		return fmt.Errorf("%w: action name in %q must be literal", ErrMalformedAction, raw)
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("%w: action name %q contains whitespace", ErrMalformedAction, name)
	}
	return nil
}

// splitParams splits the text between the parentheses of a descriptor
// into unquoted parameters.
func splitParams(inner, raw string) ([]string, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}

	var params []string
	var current strings.Builder
	var quote byte
	placeholderDepth := 0

	for index := 0; index < len(inner); index++ {
		character := inner[index]
		switch {
		case quote != 0:
			if character == quote {
				quote = 0
			}
		case character == '\'' || character == '"':
			quote = character
		case character == '$' && index+1 < len(inner) && inner[index+1] == '{':
			placeholderDepth++
		case character == '}' && placeholderDepth > 0:
			placeholderDepth--
		case character == ',' && placeholderDepth == 0:
			param, err := finishParam(current.String(), raw)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			current.Reset()
			continue
		}
		current.WriteByte(character)
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrMalformedAction, raw)
	}

	param, err := finishParam(current.String(), raw)
	if err != nil {
		return nil, err
	}
	return append(params, param), nil
}

func finishParam(text, raw string) (string, error) {
	param := strings.TrimSpace(text)
	if param == "" {
		return "", fmt.Errorf("%w: empty parameter in %q", ErrMalformedAction, raw)
	}
	if len(param) >= 2 {
		first, last := param[0], param[len(param)-1]
		if (first == '\'' || first == '"') && first == last {
			return param[1 : len(param)-1], nil
		}
	}
	return param, nil
}

// IsDynamic reports whether any parameter references the data record.
func (action Action) IsDynamic() bool {
	for _, param := range action.Params {
		if param.HasPaths() {
			return true
		}
	}
	return false
}

// Literal returns the parameters as written, without evaluation.
func (action Action) Literal() []string {
	params := make([]string, len(action.Params))
	for index, param := range action.Params {
		params[index] = param.Raw()
	}
	return params
}

// Resolve evaluates every parameter against record. Missing paths
// resolve to the empty string and are collected in missing.
func (action Action) Resolve(record Record) (params []string, missing []string) {
	params = make([]string, len(action.Params))
	for index, param := range action.Params {
		value, paramMissing := param.Evaluate(record)
		params[index] = value
		missing = append(missing, paramMissing...)
	}
	return params, missing
}

// String formats the action as a descriptor with its raw parameters.
func (action Action) String() string {
	return action.Name + "(" + strings.Join(action.Literal(), ", ") + ")"
}
