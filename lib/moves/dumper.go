package moves

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Dumper receives the score matrix for diagnostics.
type Dumper interface {
	Dump(matrix *ScoreMatrix) error
}

type NoopDumper struct{}

func (NoopDumper) Dump(*ScoreMatrix) error {
	return nil
}

// CSVDumper writes a header row with the added file keys, followed by one row
// per removed file with its scores.
type CSVDumper struct {
	Out io.Writer
}

func (d *CSVDumper) Dump(matrix *ScoreMatrix) error {
	w := csv.NewWriter(d.Out)

	header := make([]string, 0, matrix.Cols()+1)
	header = append(header, "")
	for _, a := range matrix.Added {
		header = append(header, a.Key)
	}

	err := w.Write(header)
	if err != nil {
		return err
	}

	row := make([]string, matrix.Cols()+1)
	for i, r := range matrix.Removed {
		row[0] = r.Key
		for j := range matrix.Added {
			row[j+1] = strconv.Itoa(matrix.Cell(i, j))
		}

		err = w.Write(row)
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FileDumper writes the CSV dump to a file, replacing it if it exists.
type FileDumper struct {
	Path string
}

func (d *FileDumper) Dump(matrix *ScoreMatrix) error {
	err := os.MkdirAll(filepath.Dir(d.Path), 0o700)
	if err != nil {
		return errors.Wrapf(err, "error creating dir for score matrix dump %v", d.Path)
	}

	f, err := os.Create(d.Path)
	if err != nil {
		return errors.Wrapf(err, "error creating score matrix dump %v", d.Path)
	}

	err = (&CSVDumper{Out: f}).Dump(matrix)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "error writing score matrix dump %v", d.Path)
	}

	return f.Close()
}
