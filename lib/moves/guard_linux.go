//go:build linux

package moves

import "golang.org/x/sys/unix"

func systemAvailableMemory() uint64 {
	var info unix.Sysinfo_t
	err := unix.Sysinfo(&info)
	if err != nil {
		return 0
	}

	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}

	return (uint64(info.Freeram) + uint64(info.Bufferram)) * unit
}
