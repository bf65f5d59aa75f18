// Package store defines the persistence contract the core depends on and its
// concrete backends. Pagination is offset-based: page p with page size n
// returns records ranked [(p-1)*n, p*n) in the requested order. Reads are
// best-effort, not snapshot-isolated; concurrent writers may shift page
// boundaries between calls.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Andryushik/MyDiary/models"
)

// ErrNotFound is returned when the referenced record does not exist.
var ErrNotFound = errors.New("store: not found")

// Order is the closed set of post orderings.
type Order int

const (
	// OrderByCreated sorts by createdAt, newest first.
	OrderByCreated Order = iota
	// OrderByLikes sorts by the derived like-count, largest first. The
	// like count is not a stored column, so backends evaluate this order
	// through a separate aggregation routine. Ties keep storage order.
	OrderByLikes
)

// PostFilter selects posts. Zero values mean "any"; pointer fields are
// tri-state.
type PostFilter struct {
	UserID      string   // exact owner match when non-empty
	UserIn      []string // owner in set when non-nil
	IsPrivate   *bool
	IsBanned    *bool
	IsReported  *bool
	CreatedFrom *time.Time // inclusive
	CreatedTo   *time.Time // inclusive
}

type PostStore interface {
	FindByID(ctx context.Context, id string) (*models.Post, error)
	FindPage(ctx context.Context, filter PostFilter, order Order, page, limit int) ([]models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Apply(ctx context.Context, id string, update *models.PostUpdate) error
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, id, userID string) error
	RemoveLike(ctx context.Context, id, userID string) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	ApplyProfile(ctx context.Context, id string, update *models.ProfileUpdate) error
	Follow(ctx context.Context, id, targetID string) error
	Unfollow(ctx context.Context, id, targetID string) error
}

// Offset converts 1-based page/limit into a skip count. Pages below 1 are
// treated as the first page.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return (page - 1) * limit
}
