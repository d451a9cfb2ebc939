package moves

import (
	"strconv"

	"github.com/pescuma/movedetect/lib/utils"
)

const (
	// MinRequiredScore is the minimal similarity for two files to be
	// considered the same file.
	MinRequiredScore = 85

	// MinSizeRatio is the minimal ratio between the line counts of two files
	// for them to be compared at all.
	MinSizeRatio = 0.9
)

// Config keys in the workspace configuration.
const (
	ConfigMinRequiredScore = "moves.minRequiredScore"
	ConfigMinSizeRatio     = "moves.minSizeRatio"
	ConfigMemoryFraction   = "moves.memoryFraction"
	ConfigDumpFile         = "moves.dumpFile"
)

type Options struct {
	MinRequiredScore int
	MinSizeRatio     float64
}

func DefaultOptions() Options {
	return Options{
		MinRequiredScore: MinRequiredScore,
		MinSizeRatio:     MinSizeRatio,
	}
}

// OptionsFromConfig reads the options from the workspace configuration,
// using defaults for missing or invalid values.
func OptionsFromConfig(cfg map[string]string) Options {
	result := DefaultOptions()

	score := utils.ParseIntOr(cfg[ConfigMinRequiredScore], result.MinRequiredScore)
	if score >= 0 && score <= 100 {
		result.MinRequiredScore = score
	}

	ratio := utils.ParseFloatOr(cfg[ConfigMinSizeRatio], result.MinSizeRatio)
	if ratio >= 0 && ratio <= 1 {
		result.MinSizeRatio = ratio
	}

	return result
}

func (o Options) ToConfig() map[string]string {
	return map[string]string{
		ConfigMinRequiredScore: strconv.Itoa(o.MinRequiredScore),
		ConfigMinSizeRatio:     strconv.FormatFloat(o.MinSizeRatio, 'f', -1, 64),
	}
}
