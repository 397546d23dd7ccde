// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build unix

package actions

import (
	"os"

	"golang.org/x/sys/unix"
)

// DefaultProducer returns the producer written when the user leaves it
// empty: "sgs.nemo-actions_<system>_<node>_<machine>".
func DefaultProducer() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return producer("unknown", "unknown", "unknown")
	}
	return producer(unix.ByteSliceToString(u.Sysname[:]), unix.ByteSliceToString(u.Nodename[:]), unix.ByteSliceToString(u.Machine[:]))
}

// newFileMode returns the permissions a newly created file gets under the
// process umask.
func newFileMode() os.FileMode {
	mask := unix.Umask(0)
	unix.Umask(mask)
	return 0o666 &^ os.FileMode(mask)
}
