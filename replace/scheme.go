/*
 * scheme.go, part of xtalgraph.
 *
 * Scheme resolves the replacement-scheme grammar of §4.5 into a concrete
 * list of (location, orientation) configurations. The Scheme/DefaultScheme
 * pair mirrors gochem's align.Options/align.DefaultOptions(): a plain
 * struct of named knobs with a constructor that fills in sane defaults,
 * rather than a flag-parsing or viper-backed config layer the teacher
 * never reaches for either.
 */
package replace

import (
	"fmt"
	"math/rand"

	xtal "github.com/rmera/xtalgraph"
	"github.com/rmera/xtalgraph/iso"
)

// Scheme selects which locations get replaced and which orientation is
// used at each, per §4.5 and §6's recognized configuration keys.
type Scheme struct {
	// Random, if true, picks a uniformly random orientation per selected
	// location instead of the RMSD-optimal one.
	Random bool
	// NbLoc samples this many distinct locations uniformly without
	// replacement. Ignored if Loc is set.
	NbLoc int
	// Loc lists 1-based location indices to replace. If Ori is also set,
	// they're paired positionally (same length required).
	Loc []int
	// Ori lists 1-based orientation indices, paired positionally with Loc.
	// 0 means "pick the orientation minimizing alignment RMSD at this
	// location" (§4.4's "orientation value of 0").
	Ori []int
	// Name is assigned to the produced crystal.
	Name string
	// Verbose emits human-readable progress messages via xtal.Infof.
	Verbose bool
	// Seed drives the scheme's random number generator, required for
	// reproducible tests whenever Random is set (§6).
	Seed int64
}

// DefaultScheme returns the scheme for "no scheme given": every location,
// optimal orientation at each, output named "new_xtal" per §6.
func DefaultScheme() *Scheme {
	return &Scheme{Name: "new_xtal"}
}

// config is a resolved (location, orientation) pair, 0-based internally.
// Ori == optimalOri means "minimize RMSD at this location", the internal
// counterpart of the public 1-based scheme's Ori==0.
type config struct {
	Loc int
	Ori int
}

const optimalOri = -1

// resolveConfigs turns a Scheme into the list of configs §4.5's table
// describes, erroring with KindInvalidScheme on any contradictory input.
func resolveConfigs(search *iso.Search, scheme *Scheme) ([]config, error) {
	nloc := search.NbLocations()
	rng := rand.New(rand.NewSource(scheme.Seed))

	switch {
	case len(scheme.Loc) > 0 && len(scheme.Ori) > 0:
		return resolveExplicit(search, scheme)

	case len(scheme.Loc) > 0:
		locs, err := toZeroBasedLocs(scheme.Loc, nloc)
		if err != nil {
			return nil, err
		}
		return withOrientations(search, locs, scheme.Random, rng), nil

	case scheme.NbLoc > 0:
		if scheme.NbLoc > nloc {
			return nil, invalidScheme(fmt.Sprintf("nb_loc=%d exceeds the %d locations found", scheme.NbLoc, nloc))
		}
		locs := sampleWithoutReplacement(nloc, scheme.NbLoc, rng)
		return withOrientations(search, locs, scheme.Random, rng), nil

	default: // none specified, or random=true with no loc
		locs := make([]int, nloc)
		for i := range locs {
			locs[i] = i
		}
		return withOrientations(search, locs, scheme.Random, rng), nil
	}
}

func resolveExplicit(search *iso.Search, scheme *Scheme) ([]config, error) {
	if len(scheme.Loc) != len(scheme.Ori) {
		return nil, invalidScheme(fmt.Sprintf("loc has %d entries but ori has %d", len(scheme.Loc), len(scheme.Ori)))
	}
	nloc := search.NbLocations()
	seen := make(map[config]bool, len(scheme.Loc))
	configs := make([]config, len(scheme.Loc))
	for i, loc1 := range scheme.Loc {
		ori1 := scheme.Ori[i]
		if loc1 < 1 || loc1 > nloc {
			return nil, invalidScheme(fmt.Sprintf("loc[%d]=%d out of range [1,%d]", i, loc1, nloc))
		}
		loc0 := loc1 - 1
		nori := search.NbOrientationsAtLocation(loc0)
		if ori1 < 0 || ori1 > nori {
			return nil, invalidScheme(fmt.Sprintf("ori[%d]=%d out of range [0,%d]", i, ori1, nori))
		}
		ori0 := optimalOri
		if ori1 > 0 {
			ori0 = ori1 - 1
		}
		c := config{Loc: loc0, Ori: ori0}
		if seen[c] {
			return nil, invalidScheme(fmt.Sprintf("duplicate config (loc=%d, ori=%d)", loc1, ori1))
		}
		seen[c] = true
		configs[i] = c
	}
	return configs, nil
}

func toZeroBasedLocs(loc1s []int, nloc int) ([]int, error) {
	out := make([]int, len(loc1s))
	for i, l := range loc1s {
		if l < 1 || l > nloc {
			return nil, invalidScheme(fmt.Sprintf("loc[%d]=%d out of range [1,%d]", i, l, nloc))
		}
		out[i] = l - 1
	}
	return out, nil
}

func withOrientations(search *iso.Search, locs []int, random bool, rng *rand.Rand) []config {
	configs := make([]config, len(locs))
	for i, loc := range locs {
		ori := optimalOri
		if random {
			ori = rng.Intn(search.NbOrientationsAtLocation(loc))
		}
		configs[i] = config{Loc: loc, Ori: ori}
	}
	return configs
}

// sampleWithoutReplacement draws k distinct indices from [0,n) uniformly
// without replacement, by shuffling all n indices (rng.Shuffle) and keeping
// the first k.
func sampleWithoutReplacement(n, k int, rng *rand.Rand) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	rng.Shuffle(n, func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	out := make([]int, k)
	copy(out, pool[:k])
	return out
}

func invalidScheme(msg string) *xtal.Error {
	return &xtal.Error{Kind: xtal.KindInvalidScheme, Message: msg}
}
