package orm

import (
	"time"

	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/storages"
)

type sqlFileMove struct {
	AnalysisID model.ID `gorm:"primaryKey;autoIncrement:false"`
	ToKey      string   `gorm:"primaryKey"`
	FromKey    string
	FromUUID   model.UUID
	Score      int

	CreatedAt time.Time
}

func newSqlFileMove(analysisID model.ID, m *model.Move) *sqlFileMove {
	return &sqlFileMove{
		AnalysisID: analysisID,
		ToKey:      m.File.Key,
		FromKey:    m.Original.Key,
		FromUUID:   m.Original.UUID,
		Score:      m.Score,
	}
}

func (s *sqlFileMove) ToStorage() *storages.FileMove {
	return &storages.FileMove{
		AnalysisID: s.AnalysisID,
		FromKey:    s.FromKey,
		FromUUID:   s.FromUUID,
		ToKey:      s.ToKey,
		Score:      s.Score,
	}
}

func (s *sqlFileMove) CacheKey() string {
	return compositeKey(s.AnalysisID.String(), s.ToKey)
}
