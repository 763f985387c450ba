package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendNoMutaOriginal(t *testing.T) {
	base := NewLog("a", "b")
	next := base.Append("c")

	assert.Equal(t, 2, base.Len())
	assert.Equal(t, []string{"a", "b", "c"}, next.Entries())
	assert.Equal(t, []string{"c", "b", "a"}, next.NewestFirst())
}

func TestLog_EntriesEsCopia(t *testing.T) {
	l := NewLog(1, 2)
	e := l.Entries()
	e[0] = 99

	assert.Equal(t, []int{1, 2}, l.Entries())
}

func TestLog_JSON(t *testing.T) {
	var empty Log[HistoryEntry]
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	var l Log[string]
	require.NoError(t, json.Unmarshal([]byte(`["x","y"]`), &l))
	last, ok := l.Last()
	assert.True(t, ok)
	assert.Equal(t, "y", last)
}
