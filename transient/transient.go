// Copyright 2021 The flare Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the category of a particular network error, as
// reported by function Categorize().
//
// The category Not means the error is not one of the well-known
// connection-level failures. All other categories identify a specific
// failure a user can act on (check the host name, check the server is
// up, raise the timeout, and so on).
type Category int

const (
	// Not indicates any error not covered by another category.
	Not Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true, or
	// is context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Function Categorize() will return ConnRefused if the error is not
	// a Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Function Categorize() will return ConnReset if the error is not a
	// Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNRESET.
	ConnReset
	// NoHost indicates the host name could not be resolved.
	//
	// Function Categorize() will return NoHost if the error or any of
	// its wrapped causes is a *net.DNSError that is not a timeout.
	NoHost
	// Canceled indicates the operation was abandoned because its
	// context was cancelled.
	Canceled
	categorySentinel
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"NoHost",
	"Canceled",
}

var categoryReasons = []string{
	"Request failed",
	"Request timed out",
	"Connection refused",
	"Connection reset by peer",
	"Could not resolve host",
	"Request cancelled",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < Not || c >= categorySentinel {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the category of the given error. A nil error, and
// an error that does not belong to any specific category, both produce
// the return value Not.
//
// In assessing the category, Categorize looks at wrapped cause errors
// contained within err, not just err itself.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NoHost
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	return Not
}

// Reason returns a short human-readable description of err suitable
// for showing to the user in place of a response body. The description
// is derived from the error's category; for category Not the innermost
// error message is appended.
//
// Reason returns the empty string for a nil error.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	c := Categorize(err)
	if c != Not {
		return categoryReasons[c]
	}
	return categoryReasons[Not] + ": " + innermost(err).Error()
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

type hasTimeout interface {
	Timeout() bool
}
