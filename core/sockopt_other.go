//go:build !(linux || darwin)

package core

import "syscall"

// listenControl is a no-op where socket options are not tuned
func listenControl(reusePort bool) func(network, address string, c syscall.RawConn) error {
	return nil
}
