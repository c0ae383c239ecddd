// Package scriptindex maintains a full-text index over scanned Rebol
// scripts. Words and strings go into a SQLite FTS5 table keyed by
// file and line, so a corpus of scripts can be searched by spelling.
package scriptindex

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/load"
	"github.com/rhencke/rebol/pkg/rebol/logging"
)

// Index is an open script index.
type Index struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens or creates an index database. Using ":memory:" keeps the
// index in RAM, which the tests rely on.
func Open(path string, log logging.Logger) (*Index, error) {
	if log == nil {
		log = logging.Discard()
	}

	connStr := path
	if path != ":memory:" {
		// URI form, with query-significant bytes escaped so a path
		// containing '?' or '#' keeps its meaning.
		esc := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").
			Replace(filepath.ToSlash(path))
		connStr = "file:" + esc + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, indexErr(err)
	}

	ix := &Index{db: db, log: log}
	if err := ix.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return ix, nil
}

// Close releases the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) createTables() error {
	ftsSQL := `
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			text,
			kind UNINDEXED,
			path UNINDEXED,
			line UNINDEXED,
			tokenize='unicode61'
		)
	`
	if _, err := ix.db.Exec(ftsSQL); err != nil {
		return indexErr(err)
	}

	scriptsSQL := `
		CREATE TABLE IF NOT EXISTS scripts (
			path TEXT PRIMARY KEY,
			cells INTEGER,
			indexed_at INTEGER
		)
	`
	if _, err := ix.db.Exec(scriptsSQL); err != nil {
		return indexErr(err)
	}
	return nil
}

// Entry is one indexable item found in a script.
type Entry struct {
	Text string
	Kind string
	Line int
}

// Hit is one search result.
type Hit struct {
	Text string
	Kind string
	Path string
	Line int
}

// AddScript replaces a script's entries with a fresh walk of its
// loaded body.
func (ix *Index) AddScript(path string, script *load.Script) error {
	entries := collect(script.Body)
	if script.Header != nil {
		entries = append(entries, collect(script.Header)...)
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return indexErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries_fts WHERE path = ?", path); err != nil {
		return indexErr(err)
	}
	for _, e := range entries {
		_, err := tx.Exec(
			"INSERT INTO entries_fts (text, kind, path, line) VALUES (?, ?, ?, ?)",
			e.Text, e.Kind, path, e.Line)
		if err != nil {
			return indexErr(err)
		}
	}
	_, err = tx.Exec(
		"INSERT OR REPLACE INTO scripts (path, cells, indexed_at) VALUES (?, ?, ?)",
		path, script.Body.Len(), time.Now().Unix())
	if err != nil {
		return indexErr(err)
	}

	if err := tx.Commit(); err != nil {
		return indexErr(err)
	}
	ix.log.LogLine("indexed", path, fmt.Sprintf("(%d entries)", len(entries)))
	return nil
}

// Remove drops a script and its entries.
func (ix *Index) Remove(path string) error {
	if _, err := ix.db.Exec("DELETE FROM entries_fts WHERE path = ?", path); err != nil {
		return indexErr(err)
	}
	if _, err := ix.db.Exec("DELETE FROM scripts WHERE path = ?", path); err != nil {
		return indexErr(err)
	}
	return nil
}

// IndexDir loads and indexes every matching script under dir,
// returning how many were indexed. Scripts load in relaxed mode so a
// syntax error in one file never stops the walk.
func (ix *Index) IndexDir(dir string, exts []string) (int, error) {
	if len(exts) == 0 {
		exts = []string{".r", ".reb", ".rebol"}
	}

	count := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(exts, filepath.Ext(path)) {
			return nil
		}
		script, lerr := load.File(path, load.Options{Relax: true})
		if lerr != nil {
			ix.log.LogLine("skipping", path+":", lerr.Error())
			return nil
		}
		if aerr := ix.AddScript(path, script); aerr != nil {
			return aerr
		}
		count++
		return nil
	})
	if walkErr != nil {
		if _, ok := walkErr.(*errors.ScanError); ok {
			return count, walkErr
		}
		return count, indexErr(walkErr)
	}
	return count, nil
}

// Search finds indexed entries matching an FTS5 query.
func (ix *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 25
	}
	rows, err := ix.db.Query(`
		SELECT text, kind, path, line
		FROM entries_fts
		WHERE entries_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, indexErr(err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Text, &h.Kind, &h.Path, &h.Line); err != nil {
			return nil, indexErr(err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, indexErr(err)
	}
	return hits, nil
}

// Scripts returns the indexed script paths.
func (ix *Index) Scripts() ([]string, error) {
	rows, err := ix.db.Query("SELECT path FROM scripts ORDER BY path")
	if err != nil {
		return nil, indexErr(err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, indexErr(err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func indexErr(err error) *errors.ScanError {
	return errors.New("INDEX-0001", map[string]any{"Reason": err.Error()})
}
