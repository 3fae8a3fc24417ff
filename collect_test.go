package ranges

import (
	"context"
	"testing"

	"github.com/bachmak/go-ranges/iter/slice"
	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	iter := slice.New(hundredInts)
	out, err := Collect[int](ctx, &iter)

	assert.NoError(err)
	assert.Equal(hundredInts, out)

	// collecting an empty sequence returns an empty, non-nil slice
	empty := slice.New([]int(nil))
	out, err = Collect[int](ctx, &empty)
	assert.NoError(err)
	assert.NotNil(out)
	assert.Empty(out)
}

func TestCount(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	iter := slice.New(hundredInts)
	n, err := Count[int](ctx, &iter)

	assert.NoError(err)
	assert.Equal(uint(100), n)
}

func TestFirstAndIsEmpty(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	iter := slice.New([]string{"x", "y"})
	v, ok, err := First[string](ctx, &iter)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("x", v)

	empty := slice.New([]string{})
	_, ok, err = First[string](ctx, &empty)
	assert.NoError(err)
	assert.False(ok)

	empty2 := slice.New([]string{})
	isEmpty, err := IsEmpty[string](ctx, &empty2)
	assert.NoError(err)
	assert.True(isEmpty)

	nonEmpty := slice.New([]string{"x"})
	isEmpty, err = IsEmpty[string](ctx, &nonEmpty)
	assert.NoError(err)
	assert.False(isEmpty)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"equal sequences", []int{1, 2, 3}, []int{1, 2, 3}, true},
		{"different elements", []int{1, 2, 3}, []int{1, 2, 4}, false},
		{"prefix is not equal", []int{1, 2}, []int{1, 2, 3}, false},
		{"both empty", nil, nil, true},
		{"one empty", []int{1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()

			a := slice.New(tt.a)
			b := slice.New(tt.b)

			got, err := Equal[int](ctx, &a, &b)
			assert.NoError(err)
			assert.Equal(tt.want, got)
		})
	}
}

// views compare equal to their expansion: take(n) over a source equals
// the source's prefix
func TestEqualWithViews(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	src := slice.New(hundredInts)
	prefix := slice.New(hundredInts[:10])

	got, err := Equal(ctx, TakeFrom[int](&src, 10), Iterator[int](&prefix))
	assert.NoError(err)
	assert.True(got)
}

func TestFold(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	iter := slice.New([]int{1, 2, 3, 4})
	sum, err := Fold[int](ctx, &iter, 0, func(acc, n int) int { return acc + n })

	assert.NoError(err)
	assert.Equal(10, sum)

	// folding into a different type
	words := slice.New([]string{"a", "b", "c"})
	joined, err := Fold[string](ctx, &words, "", func(acc, s string) string { return acc + s })

	assert.NoError(err)
	assert.Equal("abc", joined)
}
