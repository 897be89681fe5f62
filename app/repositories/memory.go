package repositories

import (
	"context"
	"sync"

	"lumina/app/models"
)

// MemoryRepository keeps posts in a process-local list ordered newest first.
// Every method hands out copies so callers never alias stored posts.
type MemoryRepository struct {
	posts []*models.Post
	mutex sync.RWMutex
}

// NewMemoryRepository creates a MemoryRepository holding the given posts.
func NewMemoryRepository(seed ...*models.Post) *MemoryRepository {
	r := &MemoryRepository{}
	for _, post := range seed {
		p := post.Clone()
		p.Normalize()
		r.posts = append(r.posts, p)
	}
	sortNewestFirst(r.posts)
	return r
}

func (r *MemoryRepository) Name() string { return "memory" }

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) indexOf(id string) int {
	for i, post := range r.posts {
		if post.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post.Clone())
	}
	return posts, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return r.posts[i].Clone(), nil
}

func (r *MemoryRepository) Create(ctx context.Context, post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.indexOf(post.ID) >= 0 {
		return ErrDuplicate
	}
	stored := post.Clone()
	stored.Normalize()
	r.posts = append([]*models.Post{stored}, r.posts...)
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	updated := r.posts[i].Clone()
	updated.Apply(patch)
	r.posts[i] = updated
	return updated.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return int64(len(r.posts)), nil
}

func (r *MemoryRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(postID)
	if i < 0 {
		return ErrNotFound
	}
	updated := r.posts[i].Clone()
	updated.AddComment(comment)
	r.posts[i] = updated
	return nil
}
