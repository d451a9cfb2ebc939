package model

import (
	"fmt"

	"github.com/teris-io/shortid"
	"golang.org/x/exp/rand"
)

type ID int

func (i ID) String() string {
	return fmt.Sprintf("%v", int(i))
}

// UUID identifies a file across analyses. It is carried over when a file is
// unchanged or detected as moved.
type UUID string

func NewUUID() UUID {
	return UUID(shortid.MustGenerate())
}

func init() {
	sid := shortid.MustNew(0, "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_.", rand.Uint64())
	shortid.SetDefault(sid)
}
