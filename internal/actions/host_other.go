// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !unix

package actions

import (
	"os"
	"runtime"
)

// DefaultProducer returns the producer written when the user leaves it
// empty: "sgs.nemo-actions_<system>_<node>_<machine>".
func DefaultProducer() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return producer(runtime.GOOS, host, runtime.GOARCH)
}

func newFileMode() os.FileMode { return 0o644 }
