// Package catalog tracks persisted scene files in a SQLite database so
// tooling can enumerate, describe and summarise a corpus without opening
// every file.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"

	"github.com/roomscan-data/pointprep/internal/scene"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one catalogued scene file.
type Entry struct {
	SceneID     string `json:"scene_id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	NumPoints   int64  `json:"num_points"`
	HasNormals  bool   `json:"has_normals"`
	Description string `json:"description,omitempty"`
	CreatedAtNs int64  `json:"created_at_ns"`
}

// Catalog provides persistence for scene catalog entries.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) a catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Insert creates a new catalog entry. If entry.SceneID is empty a new
// UUID is generated.
func (c *Catalog) Insert(entry *Entry) error {
	if entry.SceneID == "" {
		entry.SceneID = uuid.New().String()
	}
	if entry.CreatedAtNs == 0 {
		entry.CreatedAtNs = time.Now().UnixNano()
	}

	query := `
		INSERT INTO scenes (
			scene_id, name, path, num_points, has_normals, description, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.Exec(query,
		entry.SceneID,
		entry.Name,
		entry.Path,
		entry.NumPoints,
		entry.HasNormals,
		nullString(entry.Description),
		entry.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert scene entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by scene ID.
func (c *Catalog) Get(sceneID string) (*Entry, error) {
	query := `
		SELECT scene_id, name, path, num_points, has_normals, description, created_at_ns
		FROM scenes
		WHERE scene_id = ?
	`
	var entry Entry
	var description sql.NullString
	err := c.db.QueryRow(query, sceneID).Scan(
		&entry.SceneID,
		&entry.Name,
		&entry.Path,
		&entry.NumPoints,
		&entry.HasNormals,
		&description,
		&entry.CreatedAtNs,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scene entry not found: %s", sceneID)
	}
	if err != nil {
		return nil, fmt.Errorf("get scene entry: %w", err)
	}
	if description.Valid {
		entry.Description = description.String
	}
	return &entry, nil
}

// List retrieves all entries, optionally filtered by name, newest first.
func (c *Catalog) List(name string) ([]*Entry, error) {
	query := `
		SELECT scene_id, name, path, num_points, has_normals, description, created_at_ns
		FROM scenes
	`
	var args []interface{}
	if name != "" {
		query += ` WHERE name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at_ns DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scene entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var description sql.NullString
		err := rows.Scan(
			&entry.SceneID,
			&entry.Name,
			&entry.Path,
			&entry.NumPoints,
			&entry.HasNormals,
			&description,
			&entry.CreatedAtNs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan scene entry row: %w", err)
		}
		if description.Valid {
			entry.Description = description.String
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scene entries rows: %w", err)
	}
	return entries, nil
}

// Delete removes an entry by scene ID.
func (c *Catalog) Delete(sceneID string) error {
	result, err := c.db.Exec(`DELETE FROM scenes WHERE scene_id = ?`, sceneID)
	if err != nil {
		return fmt.Errorf("delete scene entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("scene entry not found: %s", sceneID)
	}
	return nil
}

// IndexStore inserts one entry per scene held by a loaded store.
func (c *Catalog) IndexStore(st *scene.Store) error {
	paths := st.Paths()
	for i := 0; i < st.Count(); i++ {
		sc := st.At(i)
		entry := &Entry{
			Name:       sc.Name,
			NumPoints:  int64(sc.NumPoints()),
			HasNormals: sc.HasNormals(),
		}
		if i < len(paths) {
			entry.Path = paths[i]
		}
		if err := c.Insert(entry); err != nil {
			return fmt.Errorf("index scene %q: %w", sc.Name, err)
		}
	}
	return nil
}

// Summary aggregates point-count statistics over all catalogued scenes.
type Summary struct {
	SceneCount  int     `json:"scene_count"`
	TotalPoints int64   `json:"total_points"`
	MeanPoints  float64 `json:"mean_points"`
	StdPoints   float64 `json:"std_points"`
	MinPoints   int64   `json:"min_points"`
	MaxPoints   int64   `json:"max_points"`
}

// Summarise computes corpus-level statistics from the catalog.
func (c *Catalog) Summarise() (*Summary, error) {
	entries, err := c.List("")
	if err != nil {
		return nil, err
	}
	s := &Summary{SceneCount: len(entries)}
	if len(entries) == 0 {
		return s, nil
	}

	counts := make([]float64, len(entries))
	s.MinPoints = entries[0].NumPoints
	s.MaxPoints = entries[0].NumPoints
	for i, e := range entries {
		counts[i] = float64(e.NumPoints)
		s.TotalPoints += e.NumPoints
		if e.NumPoints < s.MinPoints {
			s.MinPoints = e.NumPoints
		}
		if e.NumPoints > s.MaxPoints {
			s.MaxPoints = e.NumPoints
		}
	}
	s.MeanPoints = stat.Mean(counts, nil)
	if len(counts) > 1 {
		s.StdPoints = stat.StdDev(counts, nil)
	}
	return s, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
