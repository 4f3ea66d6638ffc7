package roster

// Draft is the working copy of a badge roster while it is being edited.
// Drafts are values: Apply never mutates its input.
type Draft struct {
	Managers []Assignee   `json:"managers"`
	Owners   []OwnerCount `json:"owners"`
}

// EventKind enumerates the edits a user can make to a draft.
type EventKind int

const (
	AddManager EventKind = iota + 1
	RemoveManager
	AddOwner
	SetOwnerCount
	RemoveOwner
	Reset
)

// Event is a single edit. Assignee is used by the add events, ID by the
// remove and count events, Count by SetOwnerCount and Committed by Reset.
type Event struct {
	Kind      EventKind
	Assignee  Assignee
	ID        int
	Count     int
	Committed Draft
}

// Apply returns the draft that results from applying ev to d.
func Apply(d Draft, ev Event) Draft {
	next := d.clone()

	switch ev.Kind {
	case AddManager:
		if indexOfManager(next.Managers, ev.Assignee.ID) < 0 {
			next.Managers = append(next.Managers, ev.Assignee)
		}
	case RemoveManager:
		if i := indexOfManager(next.Managers, ev.ID); i >= 0 {
			next.Managers = append(next.Managers[:i], next.Managers[i+1:]...)
		}
	case AddOwner:
		if i := indexOfOwner(next.Owners, ev.Assignee.ID); i >= 0 {
			next.Owners[i].Count = clampCount(next.Owners[i].Count + 1)
		} else {
			next.Owners = append(next.Owners, OwnerCount{ID: ev.Assignee.ID, Name: ev.Assignee.Name, Count: 1})
		}
	case SetOwnerCount:
		i := indexOfOwner(next.Owners, ev.ID)
		if i < 0 {
			break
		}
		count := clampCount(ev.Count)
		if count == 0 {
			next.Owners = append(next.Owners[:i], next.Owners[i+1:]...)
		} else {
			next.Owners[i].Count = count
		}
	case RemoveOwner:
		if i := indexOfOwner(next.Owners, ev.ID); i >= 0 {
			next.Owners = append(next.Owners[:i], next.Owners[i+1:]...)
		}
	case Reset:
		next = ev.Committed.clone()
	}

	return next
}

// Summary describes how a draft differs from the committed roster.
type Summary struct {
	ManagerChanges int    `json:"manager_changes"`
	ManagerLabel   string `json:"manager_label"`
	OwnerChanges   int    `json:"owner_changes"`
	OwnerLabel     string `json:"owner_label"`
}

// Summary compares d against the committed roster.
func (d Draft) Summary(committed Draft) Summary {
	managers := ManagerChanges(managerIDs(committed.Managers), managerIDs(d.Managers))
	owners := OwnerChanges(committed.Owners, d.Owners)
	return Summary{
		ManagerChanges: managers,
		ManagerLabel:   SubmitLabel(managers),
		OwnerChanges:   owners,
		OwnerLabel:     SubmitLabel(owners),
	}
}

// ManagerIDs is the payload of a manager submission.
func (d Draft) ManagerIDs() []int {
	return managerIDs(d.Managers)
}

// OwnerIDs is the payload of an owner submission.
func (d Draft) OwnerIDs() []int {
	return EncodeOwners(d.Owners)
}

func (d Draft) clone() Draft {
	c := Draft{}
	if d.Managers != nil {
		c.Managers = append(make([]Assignee, 0, len(d.Managers)), d.Managers...)
	}
	if d.Owners != nil {
		c.Owners = append(make([]OwnerCount, 0, len(d.Owners)), d.Owners...)
	}
	return c
}

func managerIDs(managers []Assignee) []int {
	ids := make([]int, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.ID)
	}
	return ids
}

func indexOfManager(managers []Assignee, id int) int {
	for i, m := range managers {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func indexOfOwner(owners []OwnerCount, id int) int {
	for i, o := range owners {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func clampCount(count int) int {
	if count < 0 {
		return 0
	}
	if count > MaxOwnerCount {
		return MaxOwnerCount
	}
	return count
}
