package num

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

func TestUint64BinomialMatchesOracle(t *testing.T) {
	var ar Uint64
	for n := uint32(0); n <= 30; n++ {
		for k := uint32(0); k <= n; k++ {
			var got uint64
			require.NoError(t, ar.Binomial(&got, n, k), "C(%d,%d)", n, k)
			assert.Equal(t, uint64(combin.Binomial(int(n), int(k))), got, "C(%d,%d)", n, k)
		}
	}
}

func TestUint64BinomialEdges(t *testing.T) {
	tests := []struct {
		name    string
		n, k    uint32
		want    uint64
		wantErr error
	}{
		{"k exceeds n", 5, 6, 0, nil},
		{"empty choice", 0, 0, 1, nil},
		{"64 choose 32 fits", 64, 32, 1832624140942590534, nil},
		{"67 choose 33 fits", 67, 33, 14226520737620288370, nil},
		{"68 choose 34 overflows", 68, 34, 0, ErrOverflow},
		{"100 choose 50 overflows", 100, 50, 0, ErrOverflow},
		{"100 choose 99", 100, 99, 100, nil},
		{"max n choose 1", math.MaxUint32, 1, math.MaxUint32, nil},
	}
	var ar Uint64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uint64
			err := ar.Binomial(&got, tt.n, tt.k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBigBinomialExact(t *testing.T) {
	var ar Big
	got := ar.New(0)
	require.NoError(t, ar.Binomial(got, 68, 34))
	assert.Equal(t, "28453041475240576740", ar.Format(got))

	require.NoError(t, ar.Binomial(got, 100, 50))
	assert.Equal(t, "100891344545564193334812497256", ar.Format(got))

	require.NoError(t, ar.Binomial(got, 3, 4))
	assert.True(t, ar.IsZero(got))
}

func TestLowMask(t *testing.T) {
	var u Uint64
	var got uint64
	require.NoError(t, u.LowMask(&got, 64))
	assert.Equal(t, uint64(math.MaxUint64), got)
	require.NoError(t, u.LowMask(&got, 3))
	assert.Equal(t, uint64(7), got)
	assert.ErrorIs(t, u.LowMask(&got, 65), ErrOverflow)

	var b Big
	x := b.New(0)
	require.NoError(t, b.LowMask(x, 65))
	want := new(big.Int).Lsh(big.NewInt(1), 65)
	want.Sub(want, big.NewInt(1))
	assert.Equal(t, 0, x.Cmp(want))
}

func TestUint64AddOverflow(t *testing.T) {
	var ar Uint64
	x := ar.New(math.MaxUint64 - 1)
	require.NoError(t, ar.Inc(x))
	assert.ErrorIs(t, ar.Inc(x), ErrOverflow)
	assert.ErrorIs(t, ar.Add(x, ar.New(1)), ErrOverflow)
	assert.Equal(t, uint64(math.MaxUint64), *x)
}

func TestBackendsAgree(t *testing.T) {
	var u Uint64
	var b Big

	x, y := u.New(10), b.New(10)
	u.Dec(x)
	b.Dec(y)
	require.NoError(t, u.Add(x, u.New(5)))
	require.NoError(t, b.Add(y, b.New(5)))
	u.Sub(x, u.New(13))
	b.Sub(y, b.New(13))

	assert.Equal(t, u.Format(x), b.Format(y))
	assert.Equal(t, u.IsOne(x), b.IsOne(y))
	assert.Equal(t, u.Cmp(x, u.New(1)), b.Cmp(y, b.New(1)))
	assert.False(t, u.IsZero(x))
	assert.False(t, b.IsZero(y))
}
