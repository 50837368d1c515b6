package scene

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roomscan-data/pointprep/internal/geom"
)

// On-disk scene container: little-endian, a fixed magic, a flags byte,
// the point count, then positions, colors, optional normals as float32
// triples and labels as int32, all in point order.
const (
	sceneMagic  = "PPSCENE1"
	flagNormals = 1 << 0

	// maxScenePoints bounds the declared point count so a corrupt
	// header cannot drive a huge allocation.
	maxScenePoints = 1 << 26
)

// FileExt is the conventional extension for scene container files.
const FileExt = ".scene"

// Write serializes s to w. The scene must validate.
func Write(w io.Writer, s *Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(sceneMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	var flags byte
	if s.HasNormals() {
		flags |= flagNormals
	}
	if err := bw.WriteByte(flags); err != nil {
		return fmt.Errorf("write flags: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(s.NumPoints())); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Positions); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Colors); err != nil {
		return fmt.Errorf("write colors: %w", err)
	}
	if s.HasNormals() {
		if err := binary.Write(bw, binary.LittleEndian, s.Normals); err != nil {
			return fmt.Errorf("write normals: %w", err)
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Labels); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	return bw.Flush()
}

// Read deserializes one scene from r. The returned scene has an empty
// Name; Load fills it from the file path.
func Read(r io.Reader) (*Scene, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(sceneMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != sceneMagic {
		return nil, fmt.Errorf("bad scene magic %q", magic)
	}
	flags, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	if count > maxScenePoints {
		return nil, fmt.Errorf("scene point count %d exceeds limit %d", count, maxScenePoints)
	}

	sc := &Scene{}
	sc.Positions = make([]geom.Vec3, count)
	if err := binary.Read(br, binary.LittleEndian, sc.Positions); err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	sc.Colors = make([]geom.Vec3, count)
	if err := binary.Read(br, binary.LittleEndian, sc.Colors); err != nil {
		return nil, fmt.Errorf("read colors: %w", err)
	}
	if flags&flagNormals != 0 {
		sc.Normals = make([]geom.Vec3, count)
		if err := binary.Read(br, binary.LittleEndian, sc.Normals); err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}
	sc.Labels = make([]int32, count)
	if err := binary.Read(br, binary.LittleEndian, sc.Labels); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return sc, nil
}

// Load reads one scene file from disk. The scene name is the file base
// name without extension.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", path, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// Save writes a scene file to disk.
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene %s: %w", path, err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("encode scene %s: %w", path, err)
	}
	return f.Close()
}
