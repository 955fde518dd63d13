package binder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []int
	}{
		{`{}`, []int{}},
		{`{"genre":null}`, []int{}},
		{`{"genre":7}`, []int{7}},
		{`{"genre":"7"}`, []int{7}},
		{`{"genre":[]}`, []int{}},
		{`{"genre":[1,"2",1]}`, []int{1, 2}},
	}

	for _, tt := range cases {
		var p struct {
			Genre IDList `json:"genre"`
		}
		require.NoError(t, json.Unmarshal([]byte(tt.in), &p), tt.in)
		assert.Equal(t, tt.want, p.Genre.Ints(), tt.in)
	}
}

func TestIDList_RejectsNonIDs(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"genre":true}`, `{"genre":["x"]}`, `{"genre":[1.5]}`, `{"genre":{"id":1}}`} {
		var p struct {
			Genre IDList `json:"genre"`
		}
		assert.Error(t, json.Unmarshal([]byte(in), &p), in)
	}
}
