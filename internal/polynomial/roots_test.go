package polynomial

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNewRoot_SortsAndDedupes(t *testing.T) {
	t.Parallel()

	perms := [][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{2, 4, 1, 3},
		{3, 1, 4, 2},
		{1, 1, 4, 2, 4, 3},
	}
	want := []float64{1, 2, 3, 4}

	for _, p := range perms {
		var r Roots
		for _, x := range p {
			r = r.AddNewRoot(x)
		}
		if diff := cmp.Diff(want, r.Values()); diff != "" {
			t.Errorf("AddNewRoot(%v) mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestAddNewRoot_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	r := NewRoots(1, 3)
	r2 := r.AddNewRoot(2)

	assert.Equal(t, []float64{1, 3}, r.Values())
	assert.Equal(t, []float64{1, 2, 3}, r2.Values())
}

func TestAddNewRoot_PanicsOnFifthRoot(t *testing.T) {
	t.Parallel()

	r := NewRoots(1, 2, 3, 4)
	assert.NotPanics(t, func() { r.AddNewRoot(2) })
	assert.Panics(t, func() { r.AddNewRoot(5) })
}

func TestRootsAccessors(t *testing.T) {
	t.Parallel()

	var empty Roots
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.Len())
	_, ok := empty.Last()
	assert.False(t, ok)
	assert.Panics(t, func() { empty.At(0) })

	r := NewRoots(5, -1)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, -1.0, r.At(0))
	assert.Equal(t, 5.0, r.At(1))
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, 5.0, last)
	assert.Equal(t, "[-1 5]", r.String())
}
