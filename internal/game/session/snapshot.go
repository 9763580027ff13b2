package session

import "time"

// Snapshot is a point-in-time copy of a session as written by a save slot,
// local or cloud. Storage and transport of snapshots belong to outside
// collaborators; this package only decides between two of them.
type Snapshot struct {
	Session Session
	SavedAt time.Time
}

// TakeSnapshot captures s at the given save time.
func TakeSnapshot(s Session, savedAt time.Time) Snapshot {
	return Snapshot{Session: clone(s), SavedAt: savedAt}
}

// Choice names which snapshot a reconciliation picked.
type Choice string

const (
	ChoiceLocal  Choice = "local"
	ChoiceRemote Choice = "remote"
)

// Resolution is the outcome of reconciling a local and a remote snapshot.
type Resolution struct {
	Chosen Choice
	// Conflict is true when the two snapshots had diverged (different
	// progress scores or timestamps); false means they were equivalent
	// and local was kept.
	Conflict bool
	// Reason is a short human-readable explanation for the pick.
	Reason string
	// LocalScore and RemoteScore are the progress scores compared.
	LocalScore  int
	RemoteScore int
}

// progressScore reduces a session to a comparable measure of how far the
// playthrough has advanced. Quest turn-ins dominate, then player level,
// then collection size, then gold, so a higher score always means strictly
// more progress of a coarser kind.
func progressScore(s Session) int {
	score := len(s.CompletedQuestIDs) * 1_000_000
	score += s.Player.Level * 10_000
	score += (len(s.Squad) + len(s.Storage)) * 100
	if s.Player.Gold > 99 {
		score += 99
	} else {
		score += s.Player.Gold
	}
	return score
}

// Reconcile decides between a local and a remote snapshot of the same
// playthrough. Deterministic and pure: the snapshot with the higher progress
// score wins; equal scores fall back to the later save time; a full tie
// keeps local. The caller applies the decision (overwriting the loser) and
// owns any user-facing confirmation.
func Reconcile(local, remote Snapshot) Resolution {
	ls, rs := progressScore(local.Session), progressScore(remote.Session)
	res := Resolution{LocalScore: ls, RemoteScore: rs}

	switch {
	case ls > rs:
		res.Chosen = ChoiceLocal
		res.Conflict = true
		res.Reason = "local save has more progress"
	case rs > ls:
		res.Chosen = ChoiceRemote
		res.Conflict = true
		res.Reason = "remote save has more progress"
	case remote.SavedAt.After(local.SavedAt):
		res.Chosen = ChoiceRemote
		res.Conflict = true
		res.Reason = "equal progress; remote save is newer"
	case local.SavedAt.After(remote.SavedAt):
		res.Chosen = ChoiceLocal
		res.Conflict = true
		res.Reason = "equal progress; local save is newer"
	default:
		res.Chosen = ChoiceLocal
		res.Reason = "snapshots are equivalent"
	}
	return res
}
