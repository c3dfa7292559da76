package sortedintvec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestConstantArithmeticProgression(t *testing.T) {
	b, err := NewBuilder(128, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 128; i++ {
		if err := b.PushBack(uint64(100 + 2*i)); err != nil {
			t.Fatal(err)
		}
	}
	v, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if v.NumBlocks() != 1 {
		t.Fatalf("NumBlocks() = %d, want 1", v.NumBlocks())
	}
	if v.blocks[0].widthType != wtConstant {
		t.Fatalf("widthType = %d, want constant(0)", v.blocks[0].widthType)
	}
	out := make([]uint64, 128)
	v.GetBlock(0, out)
	for i := 0; i < 128; i++ {
		want := uint64(100 + 2*i)
		if out[i] != want {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want)
		}
	}
}

func TestSparseOverflowBlock(t *testing.T) {
	b, _ := NewBuilder(128, true)
	for i := 0; i < 127; i++ {
		_ = b.PushBack(uint64(i))
	}
	_ = b.PushBack(1000)
	v, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Get(127); got != 1000 {
		t.Fatalf("Get(127) = %d, want 1000", got)
	}
	wt := v.blocks[0].widthType
	if wt < 1 || wt > 10 {
		t.Fatalf("widthType = %d, want in 1..10", wt)
	}
	for i := 0; i < 127; i++ {
		if got := v.Get(i); got != uint64(i) {
			t.Fatalf("Get(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestNonMonotoneLagrangeRoundTrip(t *testing.T) {
	b, err := NewBuilder(128, false)
	if err != nil {
		t.Fatal(err)
	}
	vals := make([]uint64, 128)
	for i := range vals {
		x := float64(i) - 64
		vals[i] = uint64(5000 + int64(x*x) + int64(i%7)*3)
		if err := b.PushBack(vals[i]); err != nil {
			t.Fatal(err)
		}
	}
	v, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if v.blocks[0].widthType != wtDense15 {
		t.Fatalf("widthType = %d, want dense15(15)", v.blocks[0].widthType)
	}
	for i, want := range vals {
		if got := v.Get(i); got != want {
			t.Fatalf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestGet2CrossesBlockBoundary(t *testing.T) {
	b, _ := NewBuilder(64, true)
	for i := 0; i < 130; i++ {
		_ = b.PushBack(uint64(i))
	}
	v, _ := b.Finish()
	var out [2]uint64
	v.Get2(63, &out)
	if out[0] != 63 || out[1] != 64 {
		t.Fatalf("Get2(63) = %v, want [63 64]", out)
	}
}

func TestLowerUpperBoundEqualRange(t *testing.T) {
	b, _ := NewBuilder(64, true)
	for i := 0; i < 200; i++ {
		_ = b.PushBack(uint64(i * 2))
	}
	v, _ := b.Finish()
	lo, hi := v.EqualRange(0, v.Len(), 100)
	if lo != 50 || hi != 51 {
		t.Fatalf("EqualRange(100) = (%d,%d), want (50,51)", lo, hi)
	}
	if i := v.LowerBound(0, v.Len(), 101); i != 51 {
		t.Fatalf("LowerBound(101) = %d, want 51", i)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b, err := NewBuilder(64, true)
	require.NoError(t, err)
	want := make([]uint64, 300)
	for i := range want {
		want[i] = uint64(i * 3)
		require.NoError(t, b.PushBack(want[i]))
	}
	v, err := b.Finish()
	require.NoError(t, err)

	data := v.Save()
	loaded, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, v.Len(), loaded.Len())

	got := make([]uint64, loaded.Len())
	for i := range got {
		got[i] = loaded.Get(i)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-tripped values mismatch (-want +got):\n%s", diff)
	}
}

func TestPushBackRejectsOutOfOrderWhenSortedRequired(t *testing.T) {
	b, _ := NewBuilder(64, true)
	_ = b.PushBack(10)
	if err := b.PushBack(5); err == nil {
		t.Fatal("expected InvalidArgument on sort violation")
	}
}
