package linehashes

import "github.com/pescuma/movedetect/lib/model"

// Source supplies the line hashes of the files on both sides of a move
// detection. A nil result means the content is not available.
type Source interface {
	DbFileHashes(file *model.DbFile) ([]string, error)
	ReportFileHashes(file *model.ReportFile) ([]string, error)
}

// FromRecords uses the hashes already loaded in the file records.
type FromRecords struct{}

func (FromRecords) DbFileHashes(file *model.DbFile) ([]string, error) {
	return file.LineHashes, nil
}

func (FromRecords) ReportFileHashes(file *model.ReportFile) ([]string, error) {
	return file.LineHashes, nil
}

// Funcs adapts loader functions to a Source. A nil function falls back to the
// hashes in the record.
type Funcs struct {
	Db     func(file *model.DbFile) ([]string, error)
	Report func(file *model.ReportFile) ([]string, error)
}

func (s Funcs) DbFileHashes(file *model.DbFile) ([]string, error) {
	if s.Db == nil {
		return file.LineHashes, nil
	}
	return s.Db(file)
}

func (s Funcs) ReportFileHashes(file *model.ReportFile) ([]string, error) {
	if s.Report == nil {
		return file.LineHashes, nil
	}
	return s.Report(file)
}
