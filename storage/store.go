// Package storage persists raw map snapshots, one blob per map name.
// Blobs are the deterministic binary encoding from storage/binary,
// xz-compressed and framed with a blake3 checksum so a damaged store
// is reported instead of handing corrupt data to the pipeline.
package storage

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/mapcraft/rawmap"
	"github.com/mapcraft/rawmap/mapname"
	"github.com/mapcraft/rawmap/storage/binary"
)

// NotFound is returned by GetRawMap for names without a snapshot.
var NotFound = errors.New("snapshot not found")

const keyPrefix = "raw_map/"

// A Store holds snapshots in a single key-value database under dir.
// One Store must not be opened by two processes at once; badger holds
// a directory lock.
type Store struct {
	dir string
	db  *badger.DB
}

// Open opens (or creates) the store at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating snapshot store dir %s", dir)
	}
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot store %s", dir)
	}
	return &Store{dir: dir, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func snapshotKey(name mapname.MapName) []byte {
	return []byte(keyPrefix + name.Key())
}

// PutRawMap writes one snapshot for m's name, replacing any previous
// snapshot with the same name.
func (s *Store) PutRawMap(m *rawmap.RawMap) error {
	data, err := binary.MarshalRawMap(m)
	if err != nil {
		return errors.Wrapf(err, "encoding snapshot %s", m.Name.Key())
	}
	framed, err := frame(data)
	if err != nil {
		return errors.Wrapf(err, "compressing snapshot %s", m.Name.Key())
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(m.Name), framed)
	})
	return errors.Wrapf(err, "storing snapshot %s", m.Name.Key())
}

// GetRawMap loads the snapshot for name. Returns NotFound if none was
// stored.
func (s *Store) GetRawMap(name mapname.MapName) (*rawmap.RawMap, error) {
	var framed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(name))
		if err == badger.ErrKeyNotFound {
			return NotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			framed = append([]byte(nil), val...)
			return nil
		})
	})
	if err == NotFound {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %s", name.Key())
	}
	data, err := unframe(framed)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", name.Key())
	}
	m, err := binary.UnmarshalRawMap(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding snapshot %s", name.Key())
	}
	return m, nil
}

// Exists reports whether a snapshot for name is stored.
func (s *Store) Exists(name mapname.MapName) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(snapshotKey(name))
		return err
	})
	return err == nil
}

// Delete removes the snapshot for name. Deleting a missing snapshot is
// not an error.
func (s *Store) Delete(name mapname.MapName) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(name))
	})
	return errors.Wrapf(err, "deleting snapshot %s", name.Key())
}

// ListMaps returns the names of all stored snapshots, sorted by key.
func (s *Store) ListMaps() ([]mapname.MapName, error) {
	var names []mapname.MapName
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			parts := strings.Split(strings.TrimPrefix(key, keyPrefix), "/")
			if len(parts) != 3 {
				// Not one of ours. Ignore.
				continue
			}
			names = append(names, mapname.New(parts[0], parts[1], parts[2]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing snapshots in %s", s.dir)
	}
	return names, nil
}

// frame compresses data and prepends its blake3 checksum. The checksum
// covers the uncompressed encoding, so it also catches decompression
// bugs, not just bit rot.
func frame(data []byte) ([]byte, error) {
	sum := blake3.Sum256(data)
	buf := bytes.NewBuffer(sum[:])
	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unframe(framed []byte) ([]byte, error) {
	if len(framed) < 32 {
		return nil, errors.New("snapshot blob too short")
	}
	r, err := xz.NewReader(bytes.NewReader(framed[32:]))
	if err != nil {
		return nil, errors.Wrap(err, "decompressing snapshot")
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing snapshot")
	}
	sum := blake3.Sum256(data)
	if !bytes.Equal(sum[:], framed[:32]) {
		return nil, errors.New("snapshot checksum mismatch")
	}
	return data, nil
}
