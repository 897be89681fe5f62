package repositories

import (
	"context"
	"errors"
	"fmt"

	"lumina/app/models"

	"github.com/dgraph-io/badger/v4"
)

// maxTxnRetries bounds how often a conflicting write is replayed.
const maxTxnRetries = 32

// BadgerRepository stores each post, comments included, as one JSON
// document under post:<id>.
type BadgerRepository struct {
	db   *badger.DB
	owns bool
}

// OpenBadger opens (or creates) a Badger store in dir. An empty dir opens
// a purely in-memory instance.
func OpenBadger(dir string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerRepository{db: db, owns: true}, nil
}

// NewBadgerRepository wraps an already open Badger DB. Close leaves it open.
func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func (r *BadgerRepository) Name() string { return "badger" }

func (r *BadgerRepository) Ping(ctx context.Context) error {
	if r.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return nil
}

func (r *BadgerRepository) Close() error {
	if !r.owns {
		return nil
	}
	return r.db.Close()
}

// update runs fn in a read-write transaction, replaying it when badger
// reports a conflict with a concurrent writer.
func (r *BadgerRepository) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = r.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func getPost(txn *badger.Txn, id string) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	post.Normalize()
	return &post, nil
}

func putPost(txn *badger.Txn, post *models.Post) error {
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return txn.Set(postKey(post.ID), data)
}

// List retrieves every post, newest first
func (r *BadgerRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			post.Normalize()
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetByID retrieves a post by ID
func (r *BadgerRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Create stores a new post
func (r *BadgerRepository) Create(ctx context.Context, post *models.Post) error {
	return r.update(func(txn *badger.Txn) error {
		if _, err := getPost(txn, post.ID); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		stored := post.Clone()
		stored.Normalize()
		return putPost(txn, stored)
	})
}

// Update applies a partial update to an existing post
func (r *BadgerRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	var updated *models.Post
	err := r.update(func(txn *badger.Txn) error {
		post, err := getPost(txn, id)
		if err != nil {
			return err
		}
		post.Apply(patch)
		updated = post
		return putPost(txn, post)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deletes a post, and with it its comments, by ID
func (r *BadgerRepository) Delete(ctx context.Context, id string) error {
	return r.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

// Count returns the number of stored posts
func (r *BadgerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// AppendComment adds a comment to the end of a post's thread
func (r *BadgerRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	return r.update(func(txn *badger.Txn) error {
		post, err := getPost(txn, postID)
		if err != nil {
			return err
		}
		post.AddComment(comment)
		return putPost(txn, post)
	})
}
