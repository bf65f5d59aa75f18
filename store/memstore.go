package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Andryushik/MyDiary/models"
)

// MemPostStore is an in-memory PostStore. It keeps insertion order so the
// like-count ordering's tie-break matches the document store's storage-order
// behavior. Used by tests and local development.
type MemPostStore struct {
	mu    sync.Mutex
	posts []*models.Post
}

func NewMemPostStore() *MemPostStore {
	return &MemPostStore{}
}

func (s *MemPostStore) find(id string) (int, *models.Post) {
	for i, p := range s.posts {
		if p.ID.Hex() == id {
			return i, p
		}
	}
	return -1, nil
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	c.Likes = append([]string(nil), p.Likes...)
	return &c
}

func matchPost(p *models.Post, f PostFilter) bool {
	if f.UserID != "" && p.UserID != f.UserID {
		return false
	}
	if f.UserIn != nil {
		found := false
		for _, id := range f.UserIn {
			if p.UserID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsPrivate != nil && p.IsPrivate != *f.IsPrivate {
		return false
	}
	if f.IsBanned != nil && p.IsBanned != *f.IsBanned {
		return false
	}
	if f.IsReported != nil && p.IsReported != *f.IsReported {
		return false
	}
	if f.CreatedFrom != nil && p.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && p.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

func (s *MemPostStore) FindByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(id)
	if p == nil {
		return nil, ErrNotFound
	}
	return clonePost(p), nil
}

func (s *MemPostStore) FindPage(_ context.Context, filter PostFilter, order Order, page, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []*models.Post{}
	for _, p := range s.posts {
		if matchPost(p, filter) {
			matched = append(matched, p)
		}
	}

	switch order {
	case OrderByLikes:
		sort.SliceStable(matched, func(i, j int) bool {
			return len(matched[i].Likes) > len(matched[j].Likes)
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	start := Offset(page, limit)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	result := []models.Post{}
	for _, p := range matched[start:end] {
		result = append(result, *clonePost(p))
	}
	return result, nil
}

func (s *MemPostStore) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, clonePost(post))
	return nil
}

func (s *MemPostStore) Apply(_ context.Context, id string, update *models.PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(id)
	if p == nil {
		return ErrNotFound
	}
	update.Apply(p)
	return nil
}

func (s *MemPostStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, p := s.find(id)
	if p == nil {
		return ErrNotFound
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *MemPostStore) AddLike(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(id)
	if p == nil {
		return ErrNotFound
	}
	p.Likes = append(p.Likes, userID)
	return nil
}

func (s *MemPostStore) RemoveLike(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(id)
	if p == nil {
		return ErrNotFound
	}
	likes := p.Likes[:0]
	for _, l := range p.Likes {
		if l != userID {
			likes = append(likes, l)
		}
	}
	p.Likes = likes
	return nil
}

// MemUserStore is an in-memory UserStore.
type MemUserStore struct {
	mu    sync.Mutex
	users []*models.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Following = append([]string(nil), u.Following...)
	return &c
}

func (s *MemUserStore) find(id string) *models.User {
	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u
		}
	}
	return nil
}

func (s *MemUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.find(id)
	if u == nil {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, cloneUser(user))
	return nil
}

func (s *MemUserStore) ApplyProfile(_ context.Context, id string, update *models.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.find(id)
	if u == nil {
		return ErrNotFound
	}
	update.Apply(u)
	return nil
}

func (s *MemUserStore) Follow(_ context.Context, id, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.find(id)
	if u == nil {
		return ErrNotFound
	}
	if !u.Follows(targetID) {
		u.Following = append(u.Following, targetID)
	}
	return nil
}

func (s *MemUserStore) Unfollow(_ context.Context, id, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.find(id)
	if u == nil {
		return ErrNotFound
	}
	following := u.Following[:0]
	for _, f := range u.Following {
		if f != targetID {
			following = append(following, f)
		}
	}
	u.Following = following
	return nil
}
