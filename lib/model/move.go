package model

// Move links a file of the current report to the file of the previous
// analysis it originates from.
type Move struct {
	File     *ReportFile
	Original *DbFile

	// Score is the similarity between both files, or -1 when the move was not
	// computed from content (pull request hints).
	Score int
}

const MoveScoreUnknown = -1
