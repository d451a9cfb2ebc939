package orm

import (
	"strings"

	"gorm.io/gorm/schema"
)

type sqlTable interface {
	CacheKey() string
}

// NamingStrategy names tables after the sql structs, without the sql prefix.
type NamingStrategy struct {
	schema.NamingStrategy
}

func (n *NamingStrategy) TableName(str string) string {
	return n.NamingStrategy.TableName(strings.TrimPrefix(str, "sql"))
}

func compositeKey(ids ...string) string {
	return strings.Join(ids, "\n")
}
