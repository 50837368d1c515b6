package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults_MeshScanPreset(t *testing.T) {
	cfg := EmptyTuningConfig()

	if got := cfg.GetDataset(); got != PresetMeshScan {
		t.Errorf("default dataset %q", got)
	}
	if got := cfg.GetLoop(); got != 6 {
		t.Errorf("default loop %d", got)
	}
	if got := cfg.GetVoxelMax(); got != 64000 {
		t.Errorf("default voxel_max %d", got)
	}
	if !cfg.GetElastic() {
		t.Error("meshscan preset should use elastic distortion")
	}
	if !cfg.GetUseNormals() {
		t.Error("meshscan preset should use normals")
	}
	if got := cfg.GetRatio(); got != 1.5 {
		t.Errorf("meshscan ratio %v, want 1.5", got)
	}
	if got := len(cfg.GetRotations()) * len(cfg.GetScales()); got != 12 {
		t.Errorf("meshscan view catalog size %d, want 12", got)
	}
}

func TestDefaults_RoomScanPreset(t *testing.T) {
	name := PresetRoomScan
	cfg := &TuningConfig{Dataset: &name}

	if got := cfg.GetLoop(); got != 30 {
		t.Errorf("roomscan loop %d", got)
	}
	if got := cfg.GetVoxelMax(); got != 24000 {
		t.Errorf("roomscan voxel_max %d", got)
	}
	if cfg.GetElastic() {
		t.Error("roomscan preset should use jitter, not elastic distortion")
	}
	if got := cfg.GetOffsetStride(); got != 5 {
		t.Errorf("roomscan offset stride %d, want 5", got)
	}
	if got := cfg.GetCellSize(); got != 0.04 {
		t.Errorf("roomscan cell size %v", got)
	}
	if got := cfg.GetRatio(); got != 14 {
		t.Errorf("roomscan ratio %v, want 14", got)
	}
}

func TestLoadTuningConfig_PartialOverride(t *testing.T) {
	path := writeConfig(t, `{"dataset": "roomscan", "loop": 4, "voxel_max": 1000}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.GetLoop(); got != 4 {
		t.Errorf("loop %d, want override 4", got)
	}
	if got := cfg.GetVoxelMax(); got != 1000 {
		t.Errorf("voxel_max %d, want override 1000", got)
	}
	// unset fields keep the preset
	if got := cfg.GetCellSize(); got != 0.04 {
		t.Errorf("cell_size %v, want preset 0.04", got)
	}
}

func TestLoadTuningConfig_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown preset", `{"dataset": "lunar"}`},
		{"zero loop", `{"loop": 0}`},
		{"negative voxel_max", `{"voxel_max": -1}`},
		{"zero cell size", `{"cell_size": 0}`},
		{"empty rotations", `{"rotations": []}`},
		{"bad distortion pair", `{"distortion_params": [[0.2]]}`},
		{"fractional ratio", `{"ratio": 0.5}`},
		{"zero stride", `{"offset_stride": 0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			if _, err := LoadTuningConfig(path); err == nil {
				t.Errorf("config %s accepted", tc.body)
			}
		})
	}
}

func TestLoadTuningConfig_RejectsNonJSONPath(t *testing.T) {
	if _, err := LoadTuningConfig("tuning.yaml"); err == nil {
		t.Error("non-JSON extension accepted")
	}
}
