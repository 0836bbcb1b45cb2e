// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads flare's YAML configuration file and environment
// overrides.
//
// A configuration file looks like this:
//
// 	log:
// 	  level: debug
// 	  writer: [console, file]
// 	  file: /var/log/flare.log
// 	executor:
// 	  poll_interval: 50ms
// 	  capacity: 100
// 	  http_timeout: 30s
// 	  handshake_timeout: 10s
// 	metrics:
// 	  enabled: true
// 	  addr: ":9464"
package config
