// internal/domain/contract/status.go
package contract

type Status string

const (
	StatusPending    Status = "pending"
	StatusQuoted     Status = "quoted"
	StatusApproved   Status = "approved"
	StatusActive     Status = "active"
	StatusSuspended  Status = "suspended"
	StatusTerminated Status = "terminated"
	StatusCompleted  Status = "completed"
)

// transitions lists the moves allowed without an administrative override.
var transitions = map[Status][]Status{
	StatusPending:   {StatusQuoted, StatusApproved},
	StatusQuoted:    {StatusApproved},
	StatusApproved:  {StatusActive},
	StatusActive:    {StatusSuspended, StatusTerminated, StatusCompleted},
	StatusSuspended: {StatusActive, StatusTerminated},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusQuoted, StatusApproved, StatusActive,
		StatusSuspended, StatusTerminated, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PastApproval is true for statuses a signature must not pull back to approved.
func (s Status) PastApproval() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusTerminated, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
