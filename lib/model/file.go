package model

// File holds what both sides of a move detection share. LineHashes is nil when
// the content of the file is not available.
type File struct {
	Key        string
	Path       string
	LineCount  int
	LineHashes []string
}

func (f *File) GetKey() string {
	return f.Key
}

// GetLineCount is the declared line count, or the number of hashes when none
// was declared.
func (f *File) GetLineCount() int {
	if f.LineCount > 0 {
		return f.LineCount
	}
	return len(f.LineHashes)
}

func (f *File) HasContent() bool {
	return f.LineHashes != nil
}

// DbFile is a file known from the previous analysis.
type DbFile struct {
	File
	UUID UUID
}

func NewDbFile(key string, uuid UUID) *DbFile {
	if len(key) == 0 {
		panic("empty key not supported")
	}

	return &DbFile{
		File: File{Key: key},
		UUID: uuid,
	}
}

// ReportFile is a file of the analysis being processed.
type ReportFile struct {
	File

	// Ref is the reference of the file inside the report.
	Ref string

	// OldRelativePath is the path the file had in the target branch, when the
	// scanner knows it. Only set for pull request analyses.
	OldRelativePath string
}

func NewReportFile(key string, ref string) *ReportFile {
	if len(key) == 0 {
		panic("empty key not supported")
	}

	return &ReportFile{
		File: File{Key: key},
		Ref:  ref,
	}
}
