package orm

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// workspacePragmas are applied to the connection of a workspace file.
var workspacePragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"busy_timeout(5000)",
}

func WithSqlite(file string) gorm.Dialector {
	return sqlite.Open(sqliteDSN(file, workspacePragmas))
}

// WithSqliteInMemory keeps everything only while the storage is open.
func WithSqliteInMemory() gorm.Dialector {
	return sqlite.Open(sqliteDSN(":memory:", nil))
}

func sqliteDSN(file string, pragmas []string) string {
	if len(pragmas) == 0 {
		return file
	}

	return file + "?" + strings.Join(lo.Map(pragmas, func(p string, _ int) string {
		return "_pragma=" + p
	}), "&")
}
