package storages

import (
	"github.com/pescuma/movedetect/lib/model"
)

type Storage interface {
	LoadConfig() (*map[string]string, error)
	WriteConfig() error

	// LoadLastAnalysis returns nil if the branch was never analysed.
	LoadLastAnalysis(projectKey string, branch string) (*model.Analysis, error)
	ListAnalyses(projectKey string) ([]*model.Analysis, error)
	WriteAnalysis(analysis *model.Analysis) error

	// LoadSnapshot loads the files of an analysis, without their line hashes.
	LoadSnapshot(analysis *model.Analysis) (*model.Snapshot, error)
	WriteSnapshot(snapshot *model.Snapshot) error
	// LoadLineHashes returns nil if the content of the file was not stored.
	LoadLineHashes(analysisID model.ID, uuid model.UUID) ([]string, error)

	LoadMoves(analysis *model.Analysis) ([]*FileMove, error)
	WriteMoves(analysis *model.Analysis, moves []*model.Move) error

	Close() error
}

type Factory = func(path string) (Storage, error)

// FileMove is a move as stored: the files themselves may not be loaded.
type FileMove struct {
	AnalysisID model.ID
	FromKey    string
	FromUUID   model.UUID
	ToKey      string
	Score      int
}
