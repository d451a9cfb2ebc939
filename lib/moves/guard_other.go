//go:build !linux

package moves

// Only Linux exposes free memory through x/sys, elsewhere the Go memory limit
// is the only source.
func systemAvailableMemory() uint64 {
	return 0
}
