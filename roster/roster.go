// Package roster holds the pure logic behind badge roster editing: counting
// the changes between the committed and the edited roster, the owner
// count-list wire encoding, and the draft reducer used while editing.
package roster

// MaxOwnerCount is the upper bound of a single owner's count.
const MaxOwnerCount = 100

// Assignee is a person that can be assigned to a badge as a manager.
type Assignee struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OwnerCount is an owner together with how many units of the badge they own.
type OwnerCount struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}
