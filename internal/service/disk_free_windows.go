//go:build windows

package service

import (
	"golang.org/x/sys/windows"
)

// diskUsage returns total and available bytes on the volume holding path.
func diskUsage(path string) (total, free int64, err error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, err
	}

	var freeBytes, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeBytes, &totalBytes, &totalFreeBytes); err != nil {
		return 0, 0, err
	}

	return int64(totalBytes), int64(freeBytes), nil
}
