package cmb

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

var letters = []string{"a", "b", "c", "d", "e"}

func TestCountOne(t *testing.T) {
	tests := []struct {
		n, k uint32
		want uint64
	}{
		{5, 2, 10},
		{5, 0, 1},
		{5, 5, 1},
		{5, 6, 0},
		{0, 0, 1},
		{52, 5, 2598960},
		{64, 32, 1832624140942590534},
	}
	for _, tt := range tests {
		got, err := CountOne(tt.n, tt.k)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "C(%d,%d)", tt.n, tt.k)
		assert.Equal(t, new(big.Int).SetUint64(tt.want), CountOneBig(tt.n, tt.k))
	}

	_, err := CountOne(68, 34)
	assert.ErrorIs(t, err, ErrOverflow)
	want, _ := new(big.Int).SetString("28453041475240576740", 10)
	assert.Equal(t, want, CountOneBig(68, 34))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		n    uint32
		want uint64
	}{
		{"nil config", nil, 5, 31},
		{"all sizes", &Config{}, 5, 31},
		{"with empty", &Config{ShowEmpty: true}, 5, 32},
		{"single size", &Config{SizeMin: 2, SizeMax: 2}, 5, 10},
		{"range", &Config{SizeMin: 2, SizeMax: 3}, 5, 20},
		{"descending", &Config{SizeMin: 3, SizeMax: 2}, 5, 20},
		{"clamped", &Config{SizeMin: 4, SizeMax: 9}, 5, 6},
		{"above n", &Config{SizeMin: 6, SizeMax: 9}, 5, 0},
		{"no items", &Config{ShowEmpty: true}, 0, 0},
		{"full 64", &Config{}, 64, 1<<64 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Count(tt.cfg, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, new(big.Int).SetUint64(tt.want), CountBig(tt.cfg, tt.n))
		})
	}

	_, err := Count(&Config{ShowEmpty: true}, 64)
	assert.ErrorIs(t, err, ErrOverflow)
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, want, CountBig(&Config{ShowEmpty: true}, 64))
}

func TestCmbMatchesCombin(t *testing.T) {
	ctx := context.Background()
	for n := 1; n <= 8; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for k := 1; k <= n; k++ {
			want := combin.Combinations(n, k)
			var got [][]int
			var seqs []uint64
			ret, err := Cmb(ctx, &Config{SizeMin: uint32(k), SizeMax: uint32(k)}, items, func(seq uint64, c []int) int {
				got = append(got, append([]int(nil), c...))
				seqs = append(seqs, seq)
				return 0
			})
			require.NoError(t, err)
			assert.Zero(t, ret)
			assert.Equal(t, want, got, "%dC%d", n, k)
			for i, s := range seqs {
				assert.Equal(t, uint64(i+1), s)
			}
		}
	}
}

func TestCmbBigAgrees(t *testing.T) {
	ctx := context.Background()
	configs := []*Config{
		{},
		{ShowEmpty: true},
		{SizeMin: 4, SizeMax: 2, ShowEmpty: true},
		{Start: 7, Count: 9},
		{StartBig: big.NewInt(12), CountBig: big.NewInt(3)},
	}
	for _, cfg := range configs {
		var small, large []string
		_, err := Cmb(ctx, cfg, letters, func(seq uint64, c []string) int {
			small = append(small, strings.Join(c, ""))
			return 0
		})
		require.NoError(t, err)
		_, err = CmbBig(ctx, cfg, letters, func(seq *big.Int, c []string) int {
			large = append(large, strings.Join(c, ""))
			return 0
		})
		require.NoError(t, err)
		if cfg.StartBig == nil {
			assert.Equal(t, small, large, "%+v", cfg)
		} else {
			assert.Equal(t, []string{"be", "cd", "ce"}, large)
		}
	}
}

func TestCmbStartAndCount(t *testing.T) {
	var got []string
	var seqs []uint64
	ret, err := Cmb(context.Background(), &Config{SizeMin: 2, SizeMax: 2, Start: 5, Count: 3}, letters, func(seq uint64, c []string) int {
		got = append(got, strings.Join(c, ""))
		seqs = append(seqs, seq)
		return 0
	})
	require.NoError(t, err)
	assert.Zero(t, ret)
	assert.Equal(t, []string{"bc", "bd", "be"}, got)
	assert.Equal(t, []uint64{5, 6, 7}, seqs)
}

func TestCmbStop(t *testing.T) {
	calls := 0
	ret, err := Cmb(context.Background(), nil, letters, func(seq uint64, c []string) int {
		calls++
		if calls == 3 {
			return 9
		}
		return 0
	})
	require.NoError(t, err)
	assert.Equal(t, 9, ret)
	assert.Equal(t, 3, calls)
}

func TestCmbOverflow(t *testing.T) {
	items := make([]int, 68)
	_, err := Cmb(context.Background(), &Config{SizeMin: 34, SizeMax: 34, Count: 1}, items, func(uint64, []int) int { return 0 })
	assert.ErrorIs(t, err, ErrOverflow)

	// each block fits in 64 bits but the total does not
	calls := 0
	ret, err := Cmb(context.Background(), &Config{SizeMin: 33, SizeMax: 34}, items[:67], func(uint64, []int) int {
		calls++
		return 7
	})
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Zero(t, ret)
	assert.Zero(t, calls)
	_, err = Count(&Config{SizeMin: 33, SizeMax: 34}, 67)
	assert.ErrorIs(t, err, ErrOverflow)

	calls = 0
	_, err = CmbBig(context.Background(), &Config{SizeMin: 34, SizeMax: 34, Count: 2}, items, func(*big.Int, []int) int {
		calls++
		return 0
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCmbDefaultPrinter(t *testing.T) {
	var buf bytes.Buffer
	ret, err := Cmb(context.Background(), &Config{SizeMin: 2, SizeMax: 2, Count: 3, Output: &buf}, []string{"a", "b", "c", "d"}, nil)
	require.NoError(t, err)
	assert.Zero(t, ret)
	assert.Equal(t, "a b\na c\na d\n", buf.String())

	buf.Reset()
	_, err = CmbBig(context.Background(), &Config{SizeMin: 3, SizeMax: 3, ShowNumbers: true, StartBig: big.NewInt(4), Output: &buf}, []string{"a", "b", "c", "d"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "4 b c d\n", buf.String())
}

type failWriter struct{}

var errDisk = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDisk }

func TestCmbWriteError(t *testing.T) {
	items := make([]string, 20)
	for i := range items {
		items[i] = strings.Repeat("x", 100)
	}
	ret, err := Cmb(context.Background(), &Config{Output: failWriter{}}, items, nil)
	assert.Equal(t, 1, ret)
	assert.ErrorIs(t, err, errDisk)
}
