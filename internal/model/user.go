package model

import "sample-tracker-client/internal/ident"

// User is a person samples can be assigned to.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	store Reader
}

// NewUser decodes a server record.
func NewUser(rec UserRecord, r Reader) *User {
	return &User{
		ID:    ident.Base64UUIDToString(rec.ID),
		Name:  rec.Name,
		store: r,
	}
}

func (u *User) attach(r Reader) *User {
	u.store = r
	return u
}

// AssignedSamples counts the user's samples per state. Every state is present in the
// result, with zero when the user has no sample in it.
func (u *User) AssignedSamples() map[State]int {
	counts := make(map[State]int, len(States))
	for _, state := range States {
		counts[state] = 0
	}
	if u.store == nil {
		return counts
	}
	for _, sample := range u.store.Samples() {
		owner := sample.Owner()
		if owner == nil || owner.ID != u.ID {
			continue
		}
		counts[ParseState(string(sample.State))]++
	}
	return counts
}

func userID(u *User) string { return u.ID }
