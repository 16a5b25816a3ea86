//go:build !unix

package executor

import (
	"strconv"
	"syscall"
)

func errnoName(errno syscall.Errno) string {
	return strconv.Itoa(int(errno))
}
