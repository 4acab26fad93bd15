package journal

import (
	"encoding/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/model"
)

type Config struct {
	Active bool   `yaml:"active"`
	Path   string `yaml:"path"`
}

// Journal remembers the tiles a former run already emitted a command for.
// An inactive journal knows no tile and forgets everything marked.
type Journal struct {
	log *slog.Logger
	db  *badger.DB
}

func Init(inj do.Injector) {
	cfg := do.MustInvoke[*Config](inj)
	j, err := Open(*cfg)
	if err != nil {
		j.log.Error("can't open journal, continue without", "error", err)
	}
	do.ProvideValue(inj, j)
}

// Open opens the journal database. On error an inactive journal is returned together with the error.
func Open(cfg Config) (*Journal, error) {
	j := &Journal{
		log: logging.New("journal"),
	}
	if !cfg.Active {
		return j, nil
	}
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return j, errors.Wrapf(err, "can't open journal %s", cfg.Path)
	}
	j.db = db
	j.log.Info("journal opened", "path", cfg.Path)
	return j, nil
}

func (j *Journal) IsActive() bool {
	return j.db != nil
}

// Has checks if a command for the tile was already emitted
func (j *Journal) Has(tile model.Tile) bool {
	if j.db == nil {
		return false
	}
	err := j.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(tile.Key()))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		j.log.Error("error reading journal", "tile", tile.Key(), "error", err)
	}
	return err == nil
}

// Mark records the tile with its bounds
func (j *Journal) Mark(tile model.Tile, b model.Bounds) error {
	if j.db == nil {
		return nil
	}
	data, err := json.Marshal(model.NewBoundsData(tile, b))
	if err != nil {
		return err
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tile.Key()), data)
	})
	return errors.Wrapf(err, "can't mark tile %s", tile.Key())
}

// Bounds returns the recorded bounds of the tile
func (j *Journal) Bounds(tile model.Tile) (model.BoundsData, bool) {
	var bd model.BoundsData
	if j.db == nil {
		return bd, false
	}
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tile.Key()))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &bd)
		})
	})
	return bd, err == nil
}

// Count the number of recorded tiles
func (j *Journal) Count() int {
	if j.db == nil {
		return 0
	}
	cnt := 0
	_ = j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			cnt++
		}
		return nil
	})
	return cnt
}

// Reset forgets all recorded tiles
func (j *Journal) Reset() error {
	if j.db == nil {
		return nil
	}
	return j.db.DropAll()
}

func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
