package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	alice = Assignee{ID: 1, Name: "alice"}
	bob   = Assignee{ID: 2, Name: "bob"}
	carol = Assignee{ID: 3, Name: "carol"}
)

func TestApply_Managers(t *testing.T) {
	committed := Draft{Managers: []Assignee{alice, bob}}

	d := Apply(committed, Event{Kind: RemoveManager, ID: alice.ID})
	d = Apply(d, Event{Kind: AddManager, Assignee: carol})
	d = Apply(d, Event{Kind: AddManager, Assignee: carol})

	assert.Equal(t, []Assignee{bob, carol}, d.Managers)
	assert.Equal(t, []Assignee{alice, bob}, committed.Managers, "committed roster must not be mutated")

	s := d.Summary(committed)
	assert.Equal(t, 2, s.ManagerChanges)
	assert.Equal(t, "Submit 2 changes", s.ManagerLabel)
	assert.Equal(t, []int{2, 3}, d.ManagerIDs())
}

func TestApply_Owners(t *testing.T) {
	committed := Draft{Owners: []OwnerCount{{ID: alice.ID, Name: alice.Name, Count: 3}}}

	d := Apply(committed, Event{Kind: AddOwner, Assignee: bob})
	d = Apply(d, Event{Kind: AddOwner, Assignee: bob})

	assert.Equal(t, []OwnerCount{
		{ID: alice.ID, Name: alice.Name, Count: 3},
		{ID: bob.ID, Name: bob.Name, Count: 2},
	}, d.Owners)
	assert.Equal(t, []int{1, 1, 1, 2, 2}, d.OwnerIDs())
	assert.Equal(t, 1, d.Summary(committed).OwnerChanges)
	assert.Equal(t, 3, committed.Owners[0].Count)
}

func TestApply_SetOwnerCountClamps(t *testing.T) {
	d := Draft{Owners: []OwnerCount{{ID: 1, Count: 5}}}

	d = Apply(d, Event{Kind: SetOwnerCount, ID: 1, Count: 250})
	assert.Equal(t, MaxOwnerCount, d.Owners[0].Count)

	d = Apply(d, Event{Kind: SetOwnerCount, ID: 1, Count: 0})
	assert.Empty(t, d.Owners, "zero count removes the owner")

	d = Apply(d, Event{Kind: SetOwnerCount, ID: 42, Count: 3})
	assert.Empty(t, d.Owners, "unknown owner is ignored")
}

func TestApply_AddOwnerStopsAtMax(t *testing.T) {
	d := Draft{Owners: []OwnerCount{{ID: 1, Count: MaxOwnerCount}}}
	d = Apply(d, Event{Kind: AddOwner, Assignee: Assignee{ID: 1}})
	assert.Equal(t, MaxOwnerCount, d.Owners[0].Count)
}

func TestApply_RemoveOwnerNotCounted(t *testing.T) {
	committed := Draft{Owners: []OwnerCount{{ID: 1, Count: 2}, {ID: 2, Count: 1}}}
	d := Apply(committed, Event{Kind: RemoveOwner, ID: 2})

	assert.Len(t, d.Owners, 1)
	s := d.Summary(committed)
	assert.Equal(t, 0, s.OwnerChanges)
	assert.Equal(t, "Submit", s.OwnerLabel)
}

func TestApply_Reset(t *testing.T) {
	committed := Draft{
		Managers: []Assignee{alice},
		Owners:   []OwnerCount{{ID: bob.ID, Count: 1}},
	}
	d := Apply(committed, Event{Kind: AddManager, Assignee: carol})
	d = Apply(d, Event{Kind: Reset, Committed: committed})

	assert.Equal(t, committed, d)
	assert.Equal(t, Summary{ManagerLabel: "Submit", OwnerLabel: "Submit"}, d.Summary(committed))
}
