//go:build !windows

package process

import "syscall"

// A new process group keeps terminal signals aimed at us away from the child.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
