package codomain

import (
	"math"
	"math/bits"
	"math/rand"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

// trapDistance is the signal difference between the all-ones optimum
// and the all-zeros deceptive attractor of the classic trap function.
const trapDistance = 2.5

// Random fills every table entry with an independent draw from U[0,1).
type Random struct{}

// Generate draws p.M tables of 2^p.K uniform values.
func (Random) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	for _, table := range tables {
		for j := range table {
			table[j] = rng.Float64()
		}
	}
	return tables, nil
}

func (Random) String() string { return NameRandom }
func (Random) Slug() string   { return NameRandom }

// Trap assigns every clique the classic k-bit trap: the all-ones
// pattern scores K, and all other patterns descend linearly from
// K-trapDistance at zero ones towards zero at K-1 ones, pulling local
// search away from the optimum.
type Trap struct{}

// Generate builds the deterministic trap table once and shares its
// values across all cliques. It never touches rng.
func (Trap) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	kf := float64(p.K)
	table := tables[0]
	for j := range table {
		ones := bits.OnesCount32(uint32(j))
		if ones == p.K {
			table[j] = kf
			continue
		}
		v := kf - trapDistance
		// ones > 0 implies k >= 2, so the slope denominator is safe.
		if ones > 0 {
			v -= (kf - trapDistance) / (kf - 1) * float64(ones)
		}
		table[j] = v
	}
	for i := 1; i < len(tables); i++ {
		copy(tables[i], table)
	}
	return tables, nil
}

func (Trap) String() string { return NameTrap }
func (Trap) Slug() string   { return NameTrap }

// DeceptiveTrap draws a random attractor pattern per clique. The
// attractor's bitwise complement is the clique optimum with value 1.0;
// every other pattern scores 0.9 - d*0.9/K for Hamming distance d to
// the attractor, so values rise towards the attractor everywhere except
// at the hidden optimum.
type DeceptiveTrap struct{}

// Generate draws one K-bit attractor per clique and fills the table
// from the Hamming distances to it.
func (DeceptiveTrap) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	for _, table := range tables {
		fillDeceptiveTrap(table, p.K, rng)
	}
	return tables, nil
}

func (DeceptiveTrap) String() string { return NameDeceptiveTrap }
func (DeceptiveTrap) Slug() string   { return NameDeceptiveTrap }

// fillDeceptiveTrap writes one deceptive trap clique table. The
// attractor bits are drawn most significant first, matching the table's
// pattern indexing.
func fillDeceptiveTrap(table []float64, k int, rng *rand.Rand) {
	attractor := 0
	for i := 0; i < k; i++ {
		attractor = attractor<<1 | rng.Intn(2)
	}
	step := 0.9 / float64(k)
	for j := range table {
		d := bits.OnesCount32(uint32(attractor ^ j))
		if d == k {
			table[j] = 1.0
		} else {
			table[j] = 0.9 - float64(d)*step
		}
	}
}

// NKq draws every table entry from the quantized levels i/(Q-1) for
// i in [0, Q).
type NKq struct {
	Q int
}

func (f NKq) validate() error {
	if f.Q < 2 {
		return landscape.NewConfigurationErrorf("nk-q requires q >= 2, got %d", f.Q)
	}
	return nil
}

// Generate draws p.M tables of quantized uniform values.
func (f NKq) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	levels := float64(f.Q - 1)
	for _, table := range tables {
		for j := range table {
			table[j] = float64(rng.Intn(f.Q)) / levels
		}
	}
	return tables, nil
}

func (f NKq) String() string { return NameNKq + " " + formatIntParam(f.Q) }
func (f NKq) Slug() string   { return NameNKq + "-" + formatIntParam(f.Q) }

// NKp zeroes a fraction P of each clique's entries, chosen uniformly at
// random per clique, and draws the remaining entries from U[0,1).
type NKp struct {
	P float64
}

func (f NKp) validate() error {
	if f.P < 0 || f.P > 1 {
		return landscape.NewConfigurationErrorf("nk-p requires p in [0, 1], got %v", f.P)
	}
	return nil
}

// Generate zeroes round(P*2^K) entries per clique and fills the rest
// uniformly, drawing the kept entries in index order.
func (f NKp) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	entries := p.CliqueEntries()
	zeros := int(math.Round(f.P * float64(entries)))
	for _, table := range tables {
		zeroed := make([]bool, entries)
		for _, idx := range rng.Perm(entries)[:zeros] {
			zeroed[idx] = true
		}
		for j := range table {
			if zeroed[j] {
				table[j] = 0
			} else {
				table[j] = rng.Float64()
			}
		}
	}
	return tables, nil
}

func (f NKp) String() string { return NameNKp + " " + formatFloatParam(f.P) }
func (f NKp) Slug() string   { return NameNKp + "-" + formatFloatParam(f.P) }

// RandomDeceptiveTrap makes every clique a deceptive trap with
// probability PDeceptive and a random table otherwise, mixing fully
// random structure with deceptive structure in one landscape.
type RandomDeceptiveTrap struct {
	PDeceptive float64
}

func (f RandomDeceptiveTrap) validate() error {
	if f.PDeceptive < 0 || f.PDeceptive > 1 {
		return landscape.NewConfigurationErrorf("random-deceptive-trap requires p in [0, 1], got %v", f.PDeceptive)
	}
	return nil
}

// Generate flips one coin per clique, then fills the clique as either a
// random or a deceptive trap table.
func (f RandomDeceptiveTrap) Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	tables, err := newTables(p)
	if err != nil {
		return nil, err
	}
	for _, table := range tables {
		if rng.Float64() > f.PDeceptive {
			for j := range table {
				table[j] = rng.Float64()
			}
		} else {
			fillDeceptiveTrap(table, p.K, rng)
		}
	}
	return tables, nil
}

func (f RandomDeceptiveTrap) String() string {
	return NameRandomDeceptiveTrap + " " + formatFloatParam(f.PDeceptive)
}

func (f RandomDeceptiveTrap) Slug() string {
	return NameRandomDeceptiveTrap + "-" + formatFloatParam(f.PDeceptive)
}

// Unknown tags landscapes whose tables were loaded from a file that
// does not record the generating function. It cannot generate values.
type Unknown struct{}

// Generate always fails: an unknown function has no generation rule.
func (Unknown) Generate(landscape.InputParameters, *rand.Rand) ([][]float64, error) {
	return nil, landscape.NewConfigurationErrorf("cannot generate codomain values for an unknown function").WithOperation("Unknown.Generate")
}

func (Unknown) String() string { return NameUnknown }
func (Unknown) Slug() string   { return NameUnknown }
