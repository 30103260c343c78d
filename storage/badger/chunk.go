package badger

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ChunkRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddChunks stores one or more chunks. Chunks are content-addressed, so
// re-adding identical content overwrites the same key idempotently.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(chunk.Content)
			}
			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}

			chunk.InsertedAt = time.Now().UTC()
			chunk.UpdatedAt = chunk.InsertedAt

			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(makeChunkKey(uint64(chunk.Id)), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// UpdateChunks replaces existing chunks, typically to attach embeddings.
func (r *ChunkRepository) UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(uint64(chunk.Id))

			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}

			chunk.UpdatedAt = time.Now().UTC()

			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var chunk *core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkKey(uint64(id)))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			chunk, err = storage.UnmarshalChunk(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// GetChunks retrieves multiple chunks by their IDs.
// Missing chunks are skipped without error.
func (r *ChunkRepository) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	chunks := make([]*core.Chunk, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeChunkKey(uint64(id)))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				chunk, err := storage.UnmarshalChunk(val)
				if err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// Snapshot returns every chunk in the corpus.
func (r *ChunkRepository) Snapshot(ctx context.Context) ([]*core.Chunk, error) {
	var chunks []*core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				chunk, err := storage.UnmarshalChunk(val)
				if err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// CorpusVersion returns the current corpus version, 0 if never bumped.
func (r *ChunkRepository) CorpusVersion(ctx context.Context) (uint64, error) {
	var version uint64

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(corpusVersionKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				version = 0
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 8 {
				version = binary.BigEndian.Uint64(val)
			}
			return nil
		})
	}, false)

	if err != nil {
		return 0, err
	}
	return version, nil
}

// BumpCorpusVersion increments the corpus version and returns the new value.
func (r *ChunkRepository) BumpCorpusVersion(ctx context.Context) (uint64, error) {
	var version uint64

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(corpusVersionKey))
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if err == nil {
			err = item.Value(func(val []byte) error {
				if len(val) == 8 {
					version = binary.BigEndian.Uint64(val)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		version++
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, version)
		if err := tx.Set([]byte(corpusVersionKey), buf); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return version, nil
}
