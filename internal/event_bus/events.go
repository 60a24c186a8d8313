package event_bus

import (
	"time"

	"github.com/klokku/repocard/pkg/timecard"
)

const RepoImportedType EventType = "repo.imported"

type RepoImported struct {
	Uid    string
	UserId int
	Owner  string
	Name   string
	Branch string
	// CreateTimecard asks for Timecard to be committed to Branch.
	CreateTimecard bool
	Timecard       *timecard.Timecard
	ImportedAt     time.Time
}
