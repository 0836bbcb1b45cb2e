// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// A JSONView is the best-effort structured view of a response body.
//
// The view is derived purely from the raw text. A body that is not
// valid JSON yields the zero JSONView; this is never an error, and the
// raw text remains the authoritative content.
type JSONView struct {
	// Valid reports whether the raw text parsed as JSON. A literal
	// "null" body is reported as not valid, since there is nothing to
	// show in a structured view.
	Valid bool

	// Pretty is the raw text re-indented for display. It is empty if
	// Valid is false.
	Pretty string

	// Value is the decoded JSON value: map[string]interface{} for
	// objects, []interface{} for arrays, float64 for numbers, and so
	// on, following the conventions of encoding/json. It is nil if
	// Valid is false.
	Value interface{}
}

// ParseJSON computes the JSON view of raw.
func ParseJSON(raw string) JSONView {
	if !gjson.Valid(raw) {
		return JSONView{}
	}
	result := gjson.Parse(raw)
	if result.Type == gjson.Null {
		return JSONView{}
	}
	return JSONView{
		Valid:  true,
		Pretty: strings.TrimSuffix(string(pretty.Pretty([]byte(raw))), "\n"),
		Value:  result.Value(),
	}
}

// Lookup returns the value at a gjson path within the record's body,
// for example "items.0.name". The second return value is false if the
// body is not JSON or the path does not exist.
func (r *Record) Lookup(path string) (interface{}, bool) {
	if !r.JSON.Valid {
		return nil, false
	}
	v := gjson.Get(r.Raw, path)
	if !v.Exists() {
		return nil, false
	}
	return v.Value(), true
}
