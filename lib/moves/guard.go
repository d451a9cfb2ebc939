package moves

import (
	"math"
	"math/bits"
	"runtime"
	"runtime/debug"

	"github.com/dustin/go-humanize"

	"github.com/pescuma/movedetect/lib/consoles"
)

// MemoryGuard decides, before the score matrix is allocated, if comparing
// candidateCount pairs while holding lineHashCount line hashes of both sides is
// safe. It is never consulted again once scoring starts.
type MemoryGuard interface {
	CanProceed(candidateCount int, lineHashCount int) bool
}

type AlwaysAllowGuard struct{}

func (AlwaysAllowGuard) CanProceed(int, int) bool {
	return true
}

const (
	// DefaultBytesPerCandidate accounts for the matrix cell and its entry in
	// the match queue.
	DefaultBytesPerCandidate = 64

	// DefaultBytesPerHash is the string header plus the hex digest.
	DefaultBytesPerHash = 48

	DefaultMemoryFraction = 0.5
)

// SystemMemoryGuard allows the computation if the estimated memory is below a
// fraction of the memory currently available to the process.
type SystemMemoryGuard struct {
	console consoles.Console

	BytesPerCandidate uint64
	BytesPerHash      uint64
	Fraction          float64

	// Available returns the bytes of memory that can still be allocated.
	Available func() uint64
}

func NewSystemMemoryGuard(console consoles.Console, fraction float64) *SystemMemoryGuard {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultMemoryFraction
	}

	return &SystemMemoryGuard{
		console:           console,
		BytesPerCandidate: DefaultBytesPerCandidate,
		BytesPerHash:      DefaultBytesPerHash,
		Fraction:          fraction,
		Available:         availableMemory,
	}
}

func (g *SystemMemoryGuard) CanProceed(candidateCount int, lineHashCount int) bool {
	if candidateCount <= 0 {
		return true
	}

	available := g.Available()
	allowed := uint64(float64(available) * g.Fraction)

	estimated, ok := g.estimate(candidateCount, lineHashCount)
	if !ok {
		g.console.Printf("Too many candidates to detect file moves: %v pairs and %v lines\n",
			humanize.Comma(int64(candidateCount)), humanize.Comma(int64(lineHashCount)))
		return false
	}

	if estimated > allowed {
		g.console.Printf("Not enough memory to detect file moves between %v candidate pairs with %v lines: needs %v but only %v can be used\n",
			humanize.Comma(int64(candidateCount)), humanize.Comma(int64(lineHashCount)),
			humanize.IBytes(estimated), humanize.IBytes(allowed))
		return false
	}

	g.console.Debugf("Estimated memory to detect file moves: %v (allowed %v)\n",
		humanize.IBytes(estimated), humanize.IBytes(allowed))
	return true
}

// estimate returns false when the result does not fit in an uint64.
func (g *SystemMemoryGuard) estimate(candidateCount int, lineHashCount int) (uint64, bool) {
	hi, matrix := bits.Mul64(uint64(candidateCount), g.BytesPerCandidate)
	if hi != 0 {
		return 0, false
	}

	hashes := uint64(0)
	if lineHashCount > 0 {
		hi, hashes = bits.Mul64(uint64(lineHashCount), g.BytesPerHash)
		if hi != 0 {
			return 0, false
		}
	}

	total, carry := bits.Add64(matrix, hashes, 0)
	if carry != 0 {
		return 0, false
	}

	return total, true
}

// availableMemory is the smaller of what the OS says is free and what is left
// before reaching the Go memory limit.
func availableMemory() uint64 {
	result := systemAvailableMemory()

	limit := debug.SetMemoryLimit(-1)
	if limit > 0 && limit < math.MaxInt64 {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		left := uint64(0)
		if uint64(limit) > stats.HeapInuse {
			left = uint64(limit) - stats.HeapInuse
		}

		if result == 0 || left < result {
			result = left
		}
	}

	if result == 0 {
		// Nothing known: assume we can use what the runtime already reserved
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		result = stats.Sys - stats.HeapInuse
	}

	return result
}
