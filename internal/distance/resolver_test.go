package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls int
	km    float64
	err   error
}

func (r *countingResolver) Resolve(ctx context.Context, origin, dest string) (float64, error) {
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	return r.km, nil
}

func TestMemo_CachesRepeatedLookups(t *testing.T) {
	inner := &countingResolver{km: 42.5}
	memo := NewMemo(inner)

	km, err := memo.Resolve(context.Background(), "75430", "11122")
	require.NoError(t, err)
	assert.Equal(t, 42.5, km)

	km, err = memo.Resolve(context.Background(), "75430", "11122")
	require.NoError(t, err)
	assert.Equal(t, 42.5, km)

	assert.Equal(t, 1, inner.calls)
}

func TestMemo_DirectionMatters(t *testing.T) {
	inner := &countingResolver{km: 10}
	memo := NewMemo(inner)

	_, err := memo.Resolve(context.Background(), "75430", "11122")
	require.NoError(t, err)
	_, err = memo.Resolve(context.Background(), "11122", "75430")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestMemo_DoesNotCacheErrors(t *testing.T) {
	inner := &countingResolver{err: assert.AnError}
	memo := NewMemo(inner)

	_, err := memo.Resolve(context.Background(), "75430", "11122")
	require.Error(t, err)
	_, err = memo.Resolve(context.Background(), "75430", "11122")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestValidatePostcodes(t *testing.T) {
	assert.NoError(t, validatePostcodes("75430", "11122"))
	assert.Error(t, validatePostcodes("754 30", "11122"))
	assert.Error(t, validatePostcodes("75430", "1112"))
	assert.Error(t, validatePostcodes("", "11122"))
	assert.Error(t, validatePostcodes("abcde", "11122"))
}
