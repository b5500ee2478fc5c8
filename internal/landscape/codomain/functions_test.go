package codomain

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

func TestGenerateShapes(t *testing.T) {
	p := landscape.InputParameters{M: 5, K: 3, O: 1, B: 2}
	fns := []Function{
		Random{},
		Trap{},
		DeceptiveTrap{},
		NKq{Q: 4},
		NKp{P: 0.3},
		RandomDeceptiveTrap{PDeceptive: 0.5},
	}

	for _, fn := range fns {
		t.Run(fn.Slug(), func(t *testing.T) {
			tables, err := fn.Generate(p, landscape.NewRand(7))
			require.NoError(t, err)
			require.Len(t, tables, p.M)
			for _, table := range tables {
				assert.Len(t, table, p.CliqueEntries())
			}
		})
	}
}

func TestGenerateRejectsInvalidParameters(t *testing.T) {
	bad := landscape.InputParameters{M: 0, K: 3, O: 1, B: 1}
	_, err := Random{}.Generate(bad, landscape.NewRand(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, landscape.ErrConfiguration))
}

func TestGenerateDeterminism(t *testing.T) {
	p := landscape.InputParameters{M: 4, K: 4, O: 2, B: 2}
	first, err := RandomDeceptiveTrap{PDeceptive: 0.5}.Generate(p, landscape.NewRand(99))
	require.NoError(t, err)
	second, err := RandomDeceptiveTrap{PDeceptive: 0.5}.Generate(p, landscape.NewRand(99))
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must reproduce the same tables")

	other, err := RandomDeceptiveTrap{PDeceptive: 0.5}.Generate(p, landscape.NewRand(100))
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "different seeds should diverge")
}

func TestRandomRange(t *testing.T) {
	p := landscape.InputParameters{M: 3, K: 4, O: 1, B: 1}
	tables, err := Random{}.Generate(p, landscape.NewRand(11))
	require.NoError(t, err)
	for _, table := range tables {
		for _, v := range table {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestTrapValues(t *testing.T) {
	p := landscape.InputParameters{M: 2, K: 3, O: 1, B: 1}
	rng := landscape.NewRand(5)
	tables, err := Trap{}.Generate(p, rng)
	require.NoError(t, err)

	// k=3, d=2.5: all-ones scores k, zero ones scores k-d, and the ramp
	// hits zero at k-1 ones.
	want := []float64{0.5, 0.25, 0.25, 0, 0.25, 0, 0, 3}
	assert.Equal(t, want, tables[0])
	assert.Equal(t, tables[0], tables[1], "every clique shares the same trap table")

	// The trap is deterministic and must not consume random draws.
	assert.Equal(t, landscape.NewRand(5).Int63(), rng.Int63())
}

func TestTrapSingleVariableClique(t *testing.T) {
	p := landscape.InputParameters{M: 1, K: 1, O: 0, B: 1}
	tables, err := Trap{}.Generate(p, landscape.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.5, 1}, tables[0])
}

func TestDeceptiveTrapStructure(t *testing.T) {
	const k = 4
	p := landscape.InputParameters{M: 6, K: k, O: 1, B: 2}
	tables, err := DeceptiveTrap{}.Generate(p, landscape.NewRand(21))
	require.NoError(t, err)

	step := 0.9 / float64(k)
	for i, table := range tables {
		// Exactly one entry carries the optimum value 1.0.
		attractor, optimum := -1, -1
		for j, v := range table {
			switch v {
			case 1.0:
				require.Equal(t, -1, optimum, "clique %d has more than one optimum", i)
				optimum = j
			case 0.9:
				require.Equal(t, -1, attractor, "clique %d has more than one attractor", i)
				attractor = j
			}
		}
		require.NotEqual(t, -1, optimum, "clique %d has no optimum", i)
		require.NotEqual(t, -1, attractor, "clique %d has no attractor", i)

		// The optimum is the attractor's bitwise complement.
		assert.Equal(t, attractor^(1<<k-1), optimum)

		// All other entries fall off linearly with the Hamming distance
		// to the attractor.
		for j, v := range table {
			if j == optimum {
				continue
			}
			d := bits.OnesCount32(uint32(j ^ attractor))
			assert.Equal(t, 0.9-float64(d)*step, v, "clique %d entry %d", i, j)
		}
	}
}

func TestNKqLevels(t *testing.T) {
	const q = 5
	p := landscape.InputParameters{M: 3, K: 3, O: 1, B: 1}
	tables, err := NKq{Q: q}.Generate(p, landscape.NewRand(31))
	require.NoError(t, err)

	for _, table := range tables {
		for _, v := range table {
			scaled := v * float64(q-1)
			assert.Equal(t, float64(int(scaled)), scaled, "values must sit on the q grid")
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestNKpZeroFraction(t *testing.T) {
	p := landscape.InputParameters{M: 4, K: 4, O: 2, B: 1}

	tables, err := NKp{P: 0.25}.Generate(p, landscape.NewRand(41))
	require.NoError(t, err)
	for i, table := range tables {
		zeros := 0
		for _, v := range table {
			if v == 0 {
				zeros++
			}
		}
		assert.Equal(t, 4, zeros, "clique %d should zero a quarter of 16 entries", i)
	}

	all, err := NKp{P: 1}.Generate(p, landscape.NewRand(42))
	require.NoError(t, err)
	for _, table := range all {
		for _, v := range table {
			assert.Zero(t, v)
		}
	}
}

func TestRandomDeceptiveTrapMixture(t *testing.T) {
	p := landscape.InputParameters{M: 8, K: 3, O: 1, B: 2}

	// PDeceptive 1 forces every clique into the deceptive shape.
	tables, err := RandomDeceptiveTrap{PDeceptive: 1}.Generate(p, landscape.NewRand(51))
	require.NoError(t, err)
	for i, table := range tables {
		assert.Contains(t, table, 1.0, "clique %d should be deceptive", i)
		assert.Contains(t, table, 0.9, "clique %d should be deceptive", i)
	}

	// PDeceptive 0 forces uniform tables, which never reach 1.0.
	tables, err = RandomDeceptiveTrap{PDeceptive: 0}.Generate(p, landscape.NewRand(52))
	require.NoError(t, err)
	for i, table := range tables {
		assert.NotContains(t, table, 1.0, "clique %d should be random", i)
	}
}

func TestUnknownCannotGenerate(t *testing.T) {
	p := landscape.InputParameters{M: 2, K: 3, O: 1, B: 1}
	_, err := Unknown{}.Generate(p, landscape.NewRand(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, landscape.ErrConfiguration))
}
