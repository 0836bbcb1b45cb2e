// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flare

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivation_Duration(t *testing.T) {
	var a Activation
	assert.False(t, a.Started())
	assert.False(t, a.Ended())
	assert.Equal(t, time.Duration(0), a.Duration())
	a.Start = time.Now().Add(-time.Second)
	assert.True(t, a.Started())
	assert.GreaterOrEqual(t, a.Duration(), time.Second)
	a.End = a.Start.Add(5 * time.Second)
	assert.True(t, a.Ended())
	assert.Equal(t, 5*time.Second, a.Duration())
}

func TestActivation_Timeout(t *testing.T) {
	var a Activation
	assert.False(t, a.Timeout())
	a.Err = errors.New("boom")
	assert.False(t, a.Timeout())
	a.Err = &url.Error{Op: "Get", URL: "http://x.test", Err: context.DeadlineExceeded}
	assert.True(t, a.Timeout())
}

func TestActivation_Value(t *testing.T) {
	type key int
	var a Activation
	assert.Nil(t, a.Value(key(1)))
	a.SetValue(key(1), "one")
	a.SetValue(key(2), "two")
	assert.Equal(t, "one", a.Value(key(1)))
	assert.Equal(t, "two", a.Value(key(2)))
	assert.Nil(t, a.Value(key(3)))
}
