package model

// User is the locally cached identity of the signed-in account.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ConnectionCode string `json:"connection_code"`
}

// Partner is the other half of a linked couple. Present only after a
// successful link.
type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkState tracks the partner-link lifecycle. Pending covers the
// window between the two remote partner-id writes.
type LinkState string

const (
	LinkUnlinked LinkState = "unlinked"
	LinkPending  LinkState = "pending"
	LinkLinked   LinkState = "linked"
)
