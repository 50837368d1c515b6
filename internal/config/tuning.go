// Package config holds the JSON tuning configuration for the scene
// preparation pipeline. Fields are pointer-typed so partial config
// files are safe: anything omitted falls back to the selected dataset
// preset through the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dataset preset names.
const (
	// PresetRoomScan mirrors large multi-room area scans: no normals,
	// Gaussian jitter, coarse grid with a strong downsampling ratio.
	PresetRoomScan = "roomscan"
	// PresetMeshScan mirrors reconstructed mesh scans: normals present,
	// elastic distortion, fine grid with a mild ratio, and the full
	// rotation/scale view catalog at test time.
	PresetMeshScan = "meshscan"
)

// TuningConfig is the root configuration. Every field is optional in
// JSON; unset fields resolve against the preset named by Dataset
// (default PresetMeshScan).
type TuningConfig struct {
	Dataset *string `json:"dataset,omitempty"`

	// Dataset view shape
	Loop     *int `json:"loop,omitempty"`
	VoxelMax *int `json:"voxel_max,omitempty"`

	// Grid subsampling
	CellSize *float64 `json:"cell_size,omitempty"`
	Ratio    *float64 `json:"ratio,omitempty"`

	// Augmentation
	UseNormals       *bool        `json:"use_normals,omitempty"`
	Elastic          *bool        `json:"elastic,omitempty"`
	JitterStd        *float64     `json:"jitter_std,omitempty"`
	DistortionParams *[][]float64 `json:"distortion_params,omitempty"`

	// Hierarchy builder inputs
	K         *[]int     `json:"k,omitempty"`
	GridSizes *[]float64 `json:"grid_sizes,omitempty"`
	Alpha     *float64   `json:"alpha,omitempty"`

	// Deterministic test view catalog
	Rotations    *[]float64 `json:"rotations,omitempty"` // fractions of pi
	Scales       *[]float64 `json:"scales,omitempty"`
	OffsetStride *int       `json:"offset_stride,omitempty"`

	// RNG base seed for training augmentation
	Seed *int64 `json:"seed,omitempty"`
}

// preset bundles the per-dataset default values.
type preset struct {
	loop         int
	voxelMax     int
	cellSize     float64
	ratio        float64
	useNormals   bool
	elastic      bool
	jitterStd    float64
	k            []int
	gridSizes    []float64
	alpha        float64
	rotations    []float64
	scales       []float64
	offsetStride int
}

var presets = map[string]preset{
	PresetRoomScan: {
		loop:     30,
		voxelMax: 24000,
		// grid size assumed 0.04m, roughly one point kept per 14
		cellSize:     0.04,
		ratio:        14,
		useNormals:   false,
		elastic:      false,
		jitterStd:    0.005,
		k:            []int{24, 24, 24, 24},
		gridSizes:    []float64{0.08, 0.16, 0.32},
		alpha:        0,
		rotations:    []float64{0},
		scales:       []float64{1},
		offsetStride: 5,
	},
	PresetMeshScan: {
		loop:     6,
		voxelMax: 64000,
		// grid size assumed 0.02m, roughly one point kept per 1.5
		cellSize:     0.02,
		ratio:        1.5,
		useNormals:   true,
		elastic:      true,
		jitterStd:    0.005,
		k:            []int{24, 24, 24, 24, 24},
		gridSizes:    []float64{0.04, 0.08, 0.16, 0.32},
		alpha:        0,
		rotations:    []float64{0, 0.5, 1, 1.5},
		scales:       []float64{0.95, 1, 1.05},
		offsetStride: 1,
	},
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields
// omitted from the file resolve to preset defaults, so partial configs
// are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that set values are usable.
func (c *TuningConfig) Validate() error {
	if c.Dataset != nil {
		if _, ok := presets[*c.Dataset]; !ok {
			return fmt.Errorf("unknown dataset preset %q", *c.Dataset)
		}
	}
	if c.Loop != nil && *c.Loop < 1 {
		return fmt.Errorf("loop must be at least 1, got %d", *c.Loop)
	}
	if c.VoxelMax != nil && *c.VoxelMax < 1 {
		return fmt.Errorf("voxel_max must be positive, got %d", *c.VoxelMax)
	}
	if c.CellSize != nil && *c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %f", *c.CellSize)
	}
	if c.Ratio != nil && *c.Ratio < 1 {
		return fmt.Errorf("ratio must be at least 1 (input points per kept point), got %f", *c.Ratio)
	}
	if c.JitterStd != nil && *c.JitterStd < 0 {
		return fmt.Errorf("jitter_std must be non-negative, got %f", *c.JitterStd)
	}
	if c.DistortionParams != nil {
		for i, p := range *c.DistortionParams {
			if len(p) != 2 {
				return fmt.Errorf("distortion_params[%d] must be [granularity, magnitude]", i)
			}
			if p[0] <= 0 {
				return fmt.Errorf("distortion_params[%d] granularity must be positive, got %f", i, p[0])
			}
		}
	}
	if c.Rotations != nil && len(*c.Rotations) == 0 {
		return fmt.Errorf("rotations must not be empty when set")
	}
	if c.Scales != nil && len(*c.Scales) == 0 {
		return fmt.Errorf("scales must not be empty when set")
	}
	if c.OffsetStride != nil && *c.OffsetStride < 1 {
		return fmt.Errorf("offset_stride must be at least 1, got %d", *c.OffsetStride)
	}
	return nil
}

func (c *TuningConfig) preset() preset {
	return presets[c.GetDataset()]
}

// GetDataset returns the selected preset name or the default.
func (c *TuningConfig) GetDataset() string {
	if c.Dataset == nil {
		return PresetMeshScan
	}
	return *c.Dataset
}

// GetLoop returns the repetition factor or the preset default.
func (c *TuningConfig) GetLoop() int {
	if c.Loop == nil {
		return c.preset().loop
	}
	return *c.Loop
}

// GetVoxelMax returns the crop budget or the preset default.
func (c *TuningConfig) GetVoxelMax() int {
	if c.VoxelMax == nil {
		return c.preset().voxelMax
	}
	return *c.VoxelMax
}

// GetCellSize returns the subsampling cell size or the preset default.
func (c *TuningConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return c.preset().cellSize
	}
	return *c.CellSize
}

// GetRatio returns the downsampling ratio (input points per kept
// point) or the preset default.
func (c *TuningConfig) GetRatio() float64 {
	if c.Ratio == nil {
		return c.preset().ratio
	}
	return *c.Ratio
}

// GetUseNormals reports whether the pipeline consumes normals.
func (c *TuningConfig) GetUseNormals() bool {
	if c.UseNormals == nil {
		return c.preset().useNormals
	}
	return *c.UseNormals
}

// GetElastic reports whether noise injection uses elastic distortion
// (true) or Gaussian jitter (false).
func (c *TuningConfig) GetElastic() bool {
	if c.Elastic == nil {
		return c.preset().elastic
	}
	return *c.Elastic
}

// GetJitterStd returns the jitter standard deviation or the preset
// default.
func (c *TuningConfig) GetJitterStd() float64 {
	if c.JitterStd == nil {
		return c.preset().jitterStd
	}
	return *c.JitterStd
}

// GetDistortionParams returns the elastic distortion schedule as
// (granularity, magnitude) pairs.
func (c *TuningConfig) GetDistortionParams() [][2]float64 {
	if c.DistortionParams == nil {
		return [][2]float64{{0.2, 0.4}, {0.8, 1.6}}
	}
	out := make([][2]float64, len(*c.DistortionParams))
	for i, p := range *c.DistortionParams {
		out[i] = [2]float64{p[0], p[1]}
	}
	return out
}

// GetK returns the per-level neighbor counts for the hierarchy builder.
func (c *TuningConfig) GetK() []int {
	if c.K == nil {
		return append([]int(nil), c.preset().k...)
	}
	return append([]int(nil), *c.K...)
}

// GetGridSizes returns the per-level hierarchy grid sizes.
func (c *TuningConfig) GetGridSizes() []float64 {
	if c.GridSizes == nil {
		return append([]float64(nil), c.preset().gridSizes...)
	}
	return append([]float64(nil), *c.GridSizes...)
}

// GetAlpha returns the hierarchy builder alpha or the preset default.
func (c *TuningConfig) GetAlpha() float64 {
	if c.Alpha == nil {
		return c.preset().alpha
	}
	return *c.Alpha
}

// GetRotations returns the test rotation catalog (fractions of pi).
func (c *TuningConfig) GetRotations() []float64 {
	if c.Rotations == nil {
		return append([]float64(nil), c.preset().rotations...)
	}
	return append([]float64(nil), *c.Rotations...)
}

// GetScales returns the test scale catalog.
func (c *TuningConfig) GetScales() []float64 {
	if c.Scales == nil {
		return append([]float64(nil), c.preset().scales...)
	}
	return append([]float64(nil), *c.Scales...)
}

// GetOffsetStride returns the multiplier applied to the deterministic
// offset index when requesting a subsampling pick.
func (c *TuningConfig) GetOffsetStride() int {
	if c.OffsetStride == nil {
		return c.preset().offsetStride
	}
	return *c.OffsetStride
}

// GetSeed returns the base RNG seed for training augmentation.
func (c *TuningConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}
