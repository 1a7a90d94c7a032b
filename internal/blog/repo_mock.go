package blog

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ postsRepo = (*repoMock)(nil)

type repoMock struct {
	mutex sync.Mutex
	posts map[string]*Post
}

func newRepoMock() *repoMock {
	return &repoMock{
		posts: make(map[string]*Post),
	}
}

func (r *repoMock) AddPost(_ context.Context, post *Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post.ID = primitive.NewObjectID()
	postCopy := *post
	r.posts[post.ID.Hex()] = &postCopy
	return nil
}

func (r *repoMock) UpdatePost(_ context.Context, id string, post Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.posts[id]
	if !ok {
		return ErrPostNotFound
	}
	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt
	r.posts[id] = &post
	return nil
}

func (r *repoMock) DeletePost(_ context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *repoMock) All(_ context.Context) ([]*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.sortedPosts(), nil
}

func (r *repoMock) PostsCount(_ context.Context) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.posts), nil
}

func (r *repoMock) GetPostsPage(_ context.Context, page, size int) ([]*Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sorted := r.sortedPosts()
	from := (page - 1) * size
	if from >= len(sorted) {
		return []*Post{}, nil
	}
	to := from + size
	if to > len(sorted) {
		to = len(sorted)
	}
	return sorted[from:to], nil
}

// newest first, same as the backing store
func (r *repoMock) sortedPosts() []*Post {
	sorted := make([]*Post, 0, len(r.posts))
	for _, post := range r.posts {
		postCopy := *post
		sorted = append(sorted, &postCopy)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
