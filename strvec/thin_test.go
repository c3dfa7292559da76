package strvec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSortThinStrVecSortAndBounds(t *testing.T) {
	v := NewSortThinStrVec()
	for _, w := range []string{"banana", "apple", "cherry", "apple"} {
		require.NoError(t, v.PushBack([]byte(w)))
	}
	v.Sort()

	var got []string
	for i := 0; i < v.Len(); i++ {
		got = append(got, string(v.NthData(i)))
	}
	want := []string{"apple", "apple", "banana", "cherry"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted entries mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, 0, v.LowerBound([]byte("apple")))
	require.Equal(t, 2, v.UpperBound([]byte("apple")))
	require.Equal(t, 0, v.Find([]byte("apple")))
	require.Equal(t, v.Len(), v.Find([]byte("missing")))
}

func TestSortThinStrVecMaxStrlen(t *testing.T) {
	v := NewSortThinStrVec()
	require.NoError(t, v.PushBack([]byte("x")))
	require.NoError(t, v.PushBack([]byte("xyz")))
	require.Equal(t, 3, v.MaxStrlen())
}
