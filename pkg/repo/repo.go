package repo

import (
	"errors"
	"time"

	"github.com/klokku/repocard/pkg/timecard"
)

var ErrRepoNotFound = errors.New("repository not found")
var ErrRepoAlreadyImported = errors.New("repository already imported")
var ErrTimecardNotFound = errors.New("timecard not found")
var ErrRepoInvalid = errors.New("owner and name are required")

// Ref points at a branch of a repository. An empty Branch means the default branch.
type Ref struct {
	Owner  string
	Name   string
	Branch string
}

func (r Ref) FullName() string {
	return r.Owner + "/" + r.Name
}

type Repository struct {
	Id            int
	Uid           string
	Owner         string
	Name          string
	DefaultBranch string
	HasTimecard   bool
	ImportedAt    time.Time
}

func (r Repository) Ref() Ref {
	return Ref{Owner: r.Owner, Name: r.Name, Branch: r.DefaultBranch}
}

type ImportRequest struct {
	Owner  string
	Name   string
	Branch string
	// CreateTimecard commits Timecard (or an empty template when nil) to the repository.
	CreateTimecard bool
	Timecard       *timecard.Timecard
}
