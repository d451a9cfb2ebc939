package orm

import (
	"time"

	"github.com/samber/lo"
)

// sqlConfig is one entry of the workspace configuration, like
// moves.minRequiredScore.
type sqlConfig struct {
	Name  string `gorm:"primaryKey"`
	Value string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlConfig(name string, value string) *sqlConfig {
	return &sqlConfig{
		Name:  name,
		Value: value,
	}
}

func (s *sqlConfig) CacheKey() string {
	return s.Name
}

func configFromRows(rows []*sqlConfig) map[string]string {
	return lo.Associate(rows, func(r *sqlConfig) (string, string) {
		return r.Name, r.Value
	})
}

// configChanges compares config with the rows already stored. It updates the
// cache with the changed rows and returns them together with the names that
// are no longer in config.
func configChanges(cache *map[string]*sqlConfig, config map[string]string) ([]*sqlConfig, []string) {
	var changed []*sqlConfig
	for name, value := range config {
		row := newSqlConfig(name, value)
		if prepareChange(cache, row) {
			changed = append(changed, row)
		}
	}

	var removed []string
	for name := range *cache {
		if _, ok := config[name]; !ok {
			removed = append(removed, name)
		}
	}

	return changed, removed
}
