package binder

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/locallibrary/catalog/pkg/errcodes"
)

// IDList is a set of record ids that accepts loose JSON input: null, a single
// id, or an array of ids, where each id may be a number or a numeric string.
// Form bodies bind repeated keys (genre=1&genre=2) the usual way.
type IDList []int

func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = IDList{}
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return errcodes.ValidationTypeError("id list should be an array of ids")
		}
		ids := make(IDList, 0, len(raw))
		for _, r := range raw {
			id, err := parseID(r)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		*l = ids
		return nil
	}

	id, err := parseID(data)
	if err != nil {
		return err
	}
	*l = IDList{id}
	return nil
}

// Ints returns the ids with duplicates removed, keeping first-seen order. It
// never returns nil.
func (l IDList) Ints() []int {
	seen := make(map[int]struct{}, len(l))
	ids := make([]int, 0, len(l))
	for _, id := range l {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func parseID(raw []byte) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, errcodes.ValidationTypeError("ids should be integers, got " + string(raw))
}
