package targa

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"

	"github.com/bodgit/targa/tga"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// Texture describes a stored texture without its pixels.
type Texture struct {
	ID     int64
	Name   string
	SHA1   string
	Width  int
	Height int
	Format tga.Format
}

// TextureDB stores decoded textures in SQLite. Pixel buffers are kept zstd
// compressed.
type TextureDB struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewTextureDB opens or creates the database in file.
func NewTextureDB(file string) (*TextureDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS pixels (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, format INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, format))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, pixels_id INTEGER NOT NULL, FOREIGN KEY(pixels_id) REFERENCES pixels(id))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderLowmem(true))
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &TextureDB{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the database.
func (db *TextureDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// AddTexture decodes the TGA image read from r into f and stores it under
// name, returning the texture id. Identical files stored in the same format
// share their pixels. Storing a name again points it at the new pixels.
func (db *TextureDB) AddTexture(name string, r io.Reader, f tga.Format) (int64, error) {
	h := sha1.New()
	tr := io.TeeReader(r, h)

	m, err := tga.Decode(tr, f)
	if err != nil {
		return 0, err
	}

	// Hash whatever trails the pixel data too
	if _, err := io.Copy(io.Discard, tr); err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	pixelsID, err := addPixels(tx, sha, m, db.enc.EncodeAll(m.Pix, nil))
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec("INSERT INTO texture (name, pixels_id) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET pixels_id = excluded.pixels_id", name, pixelsID); err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRow("SELECT id FROM texture WHERE name = ?", name).Scan(&id); err != nil {
		return 0, err
	}

	// Drop pixels no longer referenced after a name was replaced
	if _, err := tx.Exec("DELETE FROM pixels WHERE id NOT IN (SELECT pixels_id FROM texture)"); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

func addPixels(tx *sql.Tx, sha string, m *tga.Image, data []byte) (int64, error) {
	if _, err := tx.Exec("INSERT INTO pixels (sha1, width, height, format, data) VALUES (?, ?, ?, ?, ?) ON CONFLICT(sha1, format) DO NOTHING", sha, m.Width, m.Height, int(m.Format), data); err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRow("SELECT id FROM pixels WHERE sha1 = ? AND format = ?", sha, int(m.Format)).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// FindTextureByName returns the named texture, or nil if there is none.
func (db *TextureDB) FindTextureByName(name string) (*tga.Image, error) {
	var width, height, format int
	var data []byte
	switch err := db.db.QueryRow("SELECT p.width, p.height, p.format, p.data FROM texture t JOIN pixels p ON p.id = t.pixels_id WHERE t.name = ?", name).Scan(&width, &height, &format, &data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		pix, err := db.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		if len(pix) != width*height*format {
			return nil, fmt.Errorf("texture %q: expected %d bytes, got %d", name, width*height*format, len(pix))
		}
		return &tga.Image{
			Pix:    pix,
			Width:  width,
			Height: height,
			Format: tga.Format(format),
		}, nil
	default:
		return nil, err
	}
}

// Textures lists every stored texture ordered by name.
func (db *TextureDB) Textures() ([]Texture, error) {
	rows, err := db.db.Query("SELECT t.id, t.name, p.sha1, p.width, p.height, p.format FROM texture t JOIN pixels p ON p.id = t.pixels_id ORDER BY t.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var textures []Texture
	for rows.Next() {
		var t Texture
		var format int
		if err := rows.Scan(&t.ID, &t.Name, &t.SHA1, &t.Width, &t.Height, &format); err != nil {
			return nil, err
		}
		t.Format = tga.Format(format)
		textures = append(textures, t)
	}
	return textures, rows.Err()
}
