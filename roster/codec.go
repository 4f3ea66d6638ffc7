package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidIDList = errors.New("invalid id list")
	ErrDuplicateIDs  = errors.New("id list contains duplicates")
)

// EncodeOwners expands every pair into Count copies of its ID, keeping the
// input order. Pairs with a non-positive count emit nothing.
func EncodeOwners(owners []OwnerCount) []int {
	total := 0
	for _, o := range owners {
		if o.Count > 0 {
			total += o.Count
		}
	}

	ids := make([]int, 0, total)
	for _, o := range owners {
		for i := 0; i < o.Count; i++ {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// DecodeOwners groups a flat id list back into (id, count) pairs. Pairs are
// returned in order of first appearance.
func DecodeOwners(ids []int) []OwnerCount {
	index := make(map[int]int, len(ids))
	owners := make([]OwnerCount, 0)
	for _, id := range ids {
		if i, ok := index[id]; ok {
			owners[i].Count++
			continue
		}
		index[id] = len(owners)
		owners = append(owners, OwnerCount{ID: id, Count: 1})
	}
	return owners
}

// ParseIDList decodes a JSON array of identifiers as sent by the edit form.
// Elements may be JSON numbers or numeric strings; every element must be a
// positive integer.
func ParseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidIDList)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDList, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after array", ErrInvalidIDList)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidIDList)
	}

	ids := make([]int, 0, len(items))
	for i, item := range items {
		id, err := parseID(item)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidIDList, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(v interface{}) (int, error) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}

	// id-колонки в БД - INTEGER (int4)
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid integer id", s)
	}
	id := int(n)
	if id <= 0 {
		return 0, fmt.Errorf("%d is not a valid id", id)
	}
	return id, nil
}

// ContainsDuplicates reports whether any id occurs more than once.
func ContainsDuplicates(ids []int) bool {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
