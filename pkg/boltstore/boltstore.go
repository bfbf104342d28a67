// Package boltstore implements a lazykit.Storage on top of a bolt database,
// so the items cached by a Sequence can outgrow the memory.
package boltstore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/lazykit/pkg/lazykit"
)

const ErrCorruptItem errorkit.Error = "boltstore: corrupt item"

// Storage keeps the items in a single bucket, keyed by their big endian encoded index.
// Items are gob encoded, so T must be gob encodable.
type Storage[T any] struct {
	DB     *bolt.DB
	Bucket []byte

	length int
	loaded bool
}

func New[T any](db *bolt.DB, bucket string) *Storage[T] {
	return &Storage[T]{DB: db, Bucket: []byte(bucket)}
}

// Factory makes a new Storage with a uniquely named bucket on every call.
// It is meant to be used with lazykit.WithStorage.
func Factory[T any](db *bolt.DB) func() lazykit.Storage[T] {
	return func() lazykit.Storage[T] {
		return New[T](db, "lazykit-"+uuid.NewV4().String())
	}
}

func (s *Storage[T]) Append(vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := s.load(); err != nil {
		return err
	}
	err := s.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(s.Bucket)
		if err != nil {
			return err
		}
		for i, v := range vs {
			data, err := encode(v)
			if err != nil {
				return err
			}
			if err := bucket.Put(indexToKey(s.length+i), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.length += len(vs)
	return nil
}

func (s *Storage[T]) Len() int {
	if err := s.load(); err != nil {
		return 0
	}
	return s.length
}

func (s *Storage[T]) Lookup(index int) (T, bool, error) {
	var v T
	if index < 0 {
		return v, false, nil
	}
	if err := s.load(); err != nil {
		return v, false, err
	}
	if s.length <= index {
		return v, false, nil
	}
	err := s.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.Bucket)
		if bucket == nil {
			return ErrCorruptItem.F("bucket %q is missing", s.Bucket)
		}
		data := bucket.Get(indexToKey(index))
		if data == nil {
			return ErrCorruptItem.F("item %d is missing", index)
		}
		return decode(data, &v)
	})
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Drop deletes the bucket with every stored item.
func (s *Storage[T]) Drop() error {
	err := s.DB.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(s.Bucket) == nil {
			return nil
		}
		return tx.DeleteBucket(s.Bucket)
	})
	if err != nil {
		return err
	}
	s.length, s.loaded = 0, true
	return nil
}

// load counts the items already in the bucket, so a Storage can be reopened over an existing bucket.
func (s *Storage[T]) load() error {
	if s.loaded {
		return nil
	}
	err := s.DB.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket(s.Bucket); bucket != nil {
			s.length = bucket.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// indexToKey returns an 8-byte big endian representation of index.
func indexToKey(index int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(index))
	return b
}

func encode(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, ptr any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(ptr); err != nil {
		return ErrCorruptItem.F("%w", err)
	}
	return nil
}
