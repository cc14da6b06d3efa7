// Package session persists evaluation contexts between runs.
//
// A Store keeps variable bindings and function definitions in a bolt
// database, written as their canonical printed forms and reparsed on
// load. The core evaluator knows nothing about storage; a front end
// loads a session into a fresh Context at startup and saves the Context
// back when it is done.
package session

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/zephyrtronium/aleph"
)

var (
	bucketVars  = []byte("variables")
	bucketFuncs = []byte("functions")
)

// Store is a persistent record of a session's bindings.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a session database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the session database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session with the bindings and definitions of
// ctx.
func (s *Store) Save(ctx *aleph.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketVars, bucketFuncs} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}
		vars, err := tx.CreateBucket(bucketVars)
		if err != nil {
			return err
		}
		for _, name := range ctx.Names() {
			v, _ := ctx.Get(name)
			if err := vars.Put([]byte(name), []byte(aleph.ToString(v))); err != nil {
				return err
			}
		}
		funcs, err := tx.CreateBucket(bucketFuncs)
		if err != nil {
			return err
		}
		for _, def := range ctx.Definitions() {
			if err := funcs.Put([]byte(def.Name), []byte(aleph.ToString(def))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the stored session into ctx. Bindings parse from their
// printed forms; a value that no longer parses is an error naming the
// binding.
func (s *Store) Load(ctx *aleph.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketVars); b != nil {
			err := b.ForEach(func(k, v []byte) error {
				e, err := aleph.ParseString(string(v))
				if err != nil {
					return fmt.Errorf("binding %s: %w", k, err)
				}
				ctx.Set(string(k), e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketFuncs); b != nil {
			err := b.ForEach(func(k, v []byte) error {
				e, err := aleph.ParseString(string(v))
				if err != nil {
					return fmt.Errorf("definition %s: %w", k, err)
				}
				def, ok := e.(*aleph.FuncDef)
				if !ok {
					return fmt.Errorf("definition %s: stored form is not a definition", k)
				}
				ctx.Define(def)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
