//go:build !windows

package service

import (
	"golang.org/x/sys/unix"
)

// diskUsage returns total and available bytes on the filesystem holding path.
func diskUsage(path string) (total, free int64, err error) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, 0, err
	}
	return int64(fs.Blocks) * int64(fs.Bsize), int64(fs.Bavail) * int64(fs.Bsize), nil
}
