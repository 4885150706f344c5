package model

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(value string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == value {
			return status, nil
		}
	}

	return "", ErrInvalidStatus
}

// Blocking reports whether a booking in this status occupies its interval.
func (s Status) Blocking() bool {
	return s == StatusApproved
}

// Transition validates moving from one status to another. Every pair of known
// statuses is allowed; changed is false when nothing would be written.
func Transition(from, to Status) (changed bool, err error) {
	if _, err = ParseStatus(string(to)); err != nil {
		return false, err
	}

	return from != to, nil
}
