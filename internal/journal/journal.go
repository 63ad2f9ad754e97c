// Package journal keeps a record of every configure leg in a bbolt database.
//
// Only the most recent record per preset and configuration is kept. The
// journal is a history for inspection and change detection. Presets are
// always resolved and configured again regardless of what it holds.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/preset"
)

const (
	// DefaultDir is the default journal directory name
	DefaultDir = ".presetgen"

	// dbName is the database file inside the journal directory
	dbName = "journal.db"

	// bucketName is the bbolt bucket holding the records
	bucketName = "legs"
)

// Journal stores configure records using bbolt
type Journal struct {
	db   *bbolt.DB
	root string
	now  func() time.Time
}

// New opens the journal in dir, creating it if needed. If dir is empty,
// DefaultDir in the current working directory is used.
func New(dir string) (*Journal, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}

		dir = filepath.Join(cwd, DefaultDir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal directory "+dir), "dir", dir)
	}

	dbPath := filepath.Join(dir, dbName)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open journal database "+dbPath), "path", dbPath)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, zerr.Wrap(err, "failed to create journal bucket")
	}

	return &Journal{
		db:   db,
		root: dir,
		now:  time.Now,
	}, nil
}

// Dir returns the journal directory
func (j *Journal) Dir() string {
	return j.root
}

// Close closes the journal database
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}

	return nil
}

// Put stores rec, replacing any earlier record for the same preset and
// configuration. A zero timestamp is set to the current time.
func (j *Journal) Put(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = j.now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return zerr.Wrap(err, "failed to encode journal record")
	}

	err = j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(rec.Key()), data)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store journal record "+rec.Key()), "preset", rec.Preset)
	}

	return nil
}

// Get returns the record for a preset and configuration, or nil if none exists
func (j *Journal) Get(preset, config string) (*Record, error) {
	var rec *Record

	err := j.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(Key(preset, config)))
		if data == nil {
			return nil
		}

		rec = &Record{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read journal record "+Key(preset, config)), "preset", preset)
	}

	return rec, nil
}

// List returns every record ordered by preset, then by configuration order
func (j *Journal) List() ([]Record, error) {
	var records []Record

	err := j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list journal records")
	}

	sort.SliceStable(records, func(a, b int) bool {
		if records[a].Preset != records[b].Preset {
			return records[a].Preset < records[b].Preset
		}

		return configRank(records[a].Config) < configRank(records[b].Config)
	})

	return records, nil
}

// Clear removes every record
func (j *Journal) Clear() error {
	err := j.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return zerr.Wrap(err, "failed to clear journal")
	}

	return nil
}

// Stats returns the number of records and the size of the database file
func (j *Journal) Stats() (int, int64, error) {
	var count int

	err := j.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketName)).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, zerr.Wrap(err, "failed to read journal stats")
	}

	var size int64
	if info, err := os.Stat(filepath.Join(j.root, dbName)); err == nil {
		size = info.Size()
	}

	return count, size, nil
}

// configRank orders multi-configuration records first, then configurations
// in generation order
func configRank(config string) int {
	if config == "" {
		return 0
	}

	for i, c := range preset.Configs {
		if c.String() == config {
			return i + 1
		}
	}

	return len(preset.Configs) + 1
}
