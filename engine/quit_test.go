package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuitFlagNotifiesOnce(t *testing.T) {
	var q QuitFlag
	var order []int
	q.OnQuit(func() { order = append(order, 1) })
	q.OnQuit(func() { order = append(order, 2) })

	require.False(t, q.Requested())
	require.True(t, q.Request())
	require.True(t, q.Requested())
	require.False(t, q.Request())
	require.Equal(t, []int{1, 2}, order)

	q.OnQuit(func() { order = append(order, 3) })
	q.Request()
	require.Equal(t, []int{1, 2}, order)
}

func TestQuitFlagObserverRequestingAgain(t *testing.T) {
	var q QuitFlag
	calls := 0
	q.OnQuit(func() {
		calls++
		q.Request()
	})
	q.Request()
	require.Equal(t, 1, calls)
}
