package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/pescuma/movedetect/lib/moves"
)

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration name to change."`
	Value  string `arg:"" optional:"" help:"Configuration value to set. Empty removes the configuration."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	changed, err := ctx.ws.SetConfig(c.Config, c.Value)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Setting '%v' = '%v'\n", c.Config, c.Value)
	}

	return nil
}

type ConfigGetCmd struct {
	Config string `arg:"" optional:"" help:"Configuration name to show. Shows all if empty."`
}

func (c *ConfigGetCmd) Run(ctx *context) error {
	cfg, err := ctx.ws.LoadConfig()
	if err != nil {
		return err
	}

	fmt.Print(formatConfig(cfg, c.Config))

	return nil
}

// formatConfig lists the stored configuration plus the defaults of the move
// detection options that were not set.
func formatConfig(cfg map[string]string, only string) string {
	all := lo.Assign(moves.DefaultOptions().ToConfig(), cfg)

	keys := lo.Keys(all)
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if only != "" && only != k {
			continue
		}

		if _, ok := cfg[k]; ok {
			_, _ = fmt.Fprintf(&sb, "%v = %v\n", k, all[k])
		} else {
			_, _ = fmt.Fprintf(&sb, "%v = %v (default)\n", k, all[k])
		}
	}

	return sb.String()
}
