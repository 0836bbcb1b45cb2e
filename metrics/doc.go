// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package metrics counts executor activity in prometheus collectors.

	m := metrics.New("flare")
	handlers := &flare.HandlerGroup{}
	m.Install(handlers)
	ex := &flare.Executor{Handlers: handlers}
	http.Handle("/metrics", m.HTTPHandler())
*/
package metrics
