package orm

import (
	"time"

	"github.com/pescuma/movedetect/lib/model"
)

type sqlFile struct {
	AnalysisID model.ID   `gorm:"primaryKey;autoIncrement:false"`
	UUID       model.UUID `gorm:"primaryKey"`
	FileKey    string     `gorm:"index"`
	Path       string
	LineCount  int
	HasContent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlFile(analysisID model.ID, f *model.DbFile) *sqlFile {
	return &sqlFile{
		AnalysisID: analysisID,
		UUID:       f.UUID,
		FileKey:    f.Key,
		Path:       f.Path,
		LineCount:  f.LineCount,
		HasContent: f.HasContent(),
	}
}

func (s *sqlFile) ToModel() *model.DbFile {
	result := model.NewDbFile(s.FileKey, s.UUID)
	result.Path = s.Path
	result.LineCount = s.LineCount
	return result
}

func (s *sqlFile) CacheKey() string {
	return compositeKey(s.AnalysisID.String(), string(s.UUID))
}
