// Package linehashes computes and supplies per line content fingerprints.
package linehashes

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Hash returns the fingerprint of one line. Whitespace is ignored, so
// re-indenting a line does not change its hash. Blank lines hash to "".
func Hash(line string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)

	if stripped == "" {
		return ""
	}

	sum := md5.Sum([]byte(stripped))
	return hex.EncodeToString(sum[:])
}

// HashText returns one hash per line of text. Empty text has no lines.
func HashText(text string) []string {
	result, _ := Read(strings.NewReader(text))
	return result
}

// Read hashes all lines of r. It accepts \n, \r\n and \r as line endings. A
// non-empty input always returns a non-nil slice.
func Read(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)

	result := []string{}
	var line strings.Builder
	read := false
	pendingCR := false

	flush := func() {
		result = append(result, Hash(line.String()))
		line.Reset()
	}

	for {
		c, _, err := reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading line hashes")
		}

		read = true

		switch {
		case c == '\n' && pendingCR:
			pendingCR = false

		case c == '\n':
			flush()

		case c == '\r':
			flush()
			pendingCR = true

		default:
			pendingCR = false
			line.WriteRune(c)
		}
	}

	if !read {
		return []string{}, nil
	}

	// Last line, even if empty after a final line break
	flush()

	return result, nil
}
