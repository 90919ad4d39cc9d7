package tui

import (
	"github.com/dm/ctrack/internal/model"
)

// SnapshotMsg delivers a successful poll result. Seq is the request sequence
// number the fetch was issued under.
type SnapshotMsg struct {
	Seq      uint64
	Snapshot *model.Snapshot
}

// FetchErrorMsg signals a poll failure for request Seq.
type FetchErrorMsg struct {
	Seq uint64
	Err error
}

// TickMsg triggers the next scheduled poll. A tick scheduled under an older
// request sequence is ignored.
type TickMsg struct {
	Seq uint64
}

// CountdownTickMsg refreshes the retry countdown in the header once per
// second while disconnected. Gen guards against overlapping tick chains.
type CountdownTickMsg struct {
	Gen uint64
}
