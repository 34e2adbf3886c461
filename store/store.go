// Package store persists trained segmentation trees to an embedded
// BadgerDB instance, so a long-lived training/decoding service can
// survive restarts without retraining from the corpus.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/r0ller/morfessor/cost"
	"github.com/r0ller/morfessor/morfessorcfg"
	"github.com/r0ller/morfessor/tree"
)

const keyPrefix = "morfessor/model/"

// Model is the gob-encoded snapshot written for one trained lexicon: the
// full node set (leaves and internal nodes, so decode works immediately
// after Load without retraining) plus the configuration and overall cost
// at training time.
type Model struct {
	Config      morfessorcfg.Config
	Nodes       []tree.Node
	OverallCost float64
	TrainedAt   time.Time
}

// Store wraps a *badger.DB with Morfessor-specific Save/Load.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a persistent BadgerDB at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a BadgerDB instance backed by memory only, for
// tests and short-lived processes that still want the Store interface.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open in-memory: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save gob-encodes a snapshot of t under name, alongside the
// configuration that produced it.
func (s *Store) Save(name string, cfg morfessorcfg.Config, t *tree.Tree, trainedAt time.Time) error {
	model := Model{
		Config:      cfg,
		Nodes:       t.All(),
		OverallCost: t.Model().OverallCost(),
		TrainedAt:   trainedAt,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(model); err != nil {
		return fmt.Errorf("store: encode model %q: %w", name, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), buf.Bytes())
	})
}

// Load decodes the snapshot stored under name and rebuilds a *tree.Tree
// from it via tree.Restore.
func (s *Store) Load(name string) (*tree.Tree, Model, error) {
	var model Model
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&model)
		})
	})
	if err != nil {
		return nil, Model{}, fmt.Errorf("store: load model %q: %w", name, err)
	}

	if err := model.Config.Validate(); err != nil {
		return nil, Model{}, fmt.Errorf("store: stored config for %q is invalid: %w", name, err)
	}

	mode, _ := cost.ParseMode(model.Config.AlgorithmMode)
	t := tree.Restore(mode, model.Config.Params(), model.Nodes)
	return t, model, nil
}
