//go:build windows

package server

import "os"

// Config reload via SIGHUP is not supported on Windows.
func notifyReload(chan<- os.Signal) {}
