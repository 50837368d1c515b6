package scene

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/roomscan-data/pointprep/internal/monitoring"
)

// StoreConfig selects and shapes the scene set loaded by a Store. Split
// membership is explicit configuration: either a directory plus glob
// pattern, or an explicit file list, passed in by the caller.
type StoreConfig struct {
	// Dir and Pattern enumerate scene files via filepath glob.
	// Pattern defaults to "*.scene".
	Dir     string
	Pattern string

	// Files, when non-empty, is used verbatim instead of Dir/Pattern.
	Files []string

	// Loop is the repetition factor: logical length is Count()*Loop.
	// Defaults to 1.
	Loop int

	// Training marks the store as feeding stochastic augmentation.
	Training bool

	// Warmup, together with Training, restricts the store to the single
	// scene with the largest point count so the heaviest shape can be
	// exercised once before steady-state processing.
	Warmup bool
}

// Store eagerly loads a fixed set of scenes and shares them, read-only,
// with any number of concurrent samplers. All disk I/O happens at
// construction.
type Store struct {
	scenes []*Scene
	paths  []string
	loop   int
}

// NewStore enumerates, loads, and validates the configured scene set.
// It fails with ErrNoScenes when enumeration is empty and with a
// ShapeMismatchError when any scene's tensors disagree in length.
func NewStore(cfg StoreConfig) (*Store, error) {
	paths := cfg.Files
	if len(paths) == 0 {
		pattern := cfg.Pattern
		if pattern == "" {
			pattern = "*" + FileExt
		}
		matched, err := filepath.Glob(filepath.Join(cfg.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob scenes %s/%s: %w", cfg.Dir, pattern, err)
		}
		sort.Strings(matched)
		paths = matched
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w (dir=%q pattern=%q)", ErrNoScenes, cfg.Dir, cfg.Pattern)
	}

	scenes := make([]*Scene, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}

	if cfg.Training && cfg.Warmup {
		// Keep only the largest scene; ties keep the first maximum.
		best := 0
		for i, s := range scenes {
			if s.NumPoints() > scenes[best].NumPoints() {
				best = i
			}
		}
		monitoring.Logf("scene store: warmup mode, keeping %q (%d points) of %d scenes",
			scenes[best].Name, scenes[best].NumPoints(), len(scenes))
		scenes = scenes[best : best+1]
		paths = paths[best : best+1]
	}

	loop := cfg.Loop
	if loop <= 0 {
		loop = 1
	}

	monitoring.Logf("scene store: loaded %d scenes, loop=%d, logical length %d",
		len(scenes), loop, len(scenes)*loop)
	return &Store{scenes: scenes, paths: paths, loop: loop}, nil
}

// Count returns the number of loaded scenes.
func (st *Store) Count() int { return len(st.scenes) }

// Loop returns the repetition factor.
func (st *Store) Loop() int { return st.loop }

// Len returns the logical dataset length, Count()*Loop().
func (st *Store) Len() int { return len(st.scenes) * st.loop }

// At returns the i-th scene. The returned scene is shared and must not
// be mutated.
func (st *Store) At(i int) *Scene { return st.scenes[i] }

// Paths returns the file paths backing the loaded scenes, in load order.
func (st *Store) Paths() []string { return st.paths }
