package orm

import (
	"github.com/pescuma/movedetect/lib/model"
)

// sqlFileLineHashes is kept apart from sqlFile so that loading a snapshot does
// not load the content of all files.
type sqlFileLineHashes struct {
	AnalysisID model.ID   `gorm:"primaryKey;autoIncrement:false"`
	UUID       model.UUID `gorm:"primaryKey"`
	Hashes     string
}

func newSqlFileLineHashes(analysisID model.ID, f *model.DbFile) *sqlFileLineHashes {
	return &sqlFileLineHashes{
		AnalysisID: analysisID,
		UUID:       f.UUID,
		Hashes:     encodeLineHashes(f.LineHashes),
	}
}

func (s *sqlFileLineHashes) CacheKey() string {
	return compositeKey(s.AnalysisID.String(), string(s.UUID))
}
