// Package posts orchestrates the post lifecycle: create, update, delete,
// like toggle and the report/ban transitions, with their authorization gates.
package posts

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/imagestore"
	"github.com/Andryushik/MyDiary/models"
	"github.com/Andryushik/MyDiary/policy"
	"github.com/Andryushik/MyDiary/store"
)

type Service struct {
	posts  store.PostStore
	users  store.UserStore
	images imagestore.ImageStore
}

func NewService(posts store.PostStore, users store.UserStore, images imagestore.ImageStore) *Service {
	return &Service{posts: posts, users: users, images: images}
}

// CreateRequest carries the fields a caller may set on a new post. Tags
// arrive as space-delimited text and are normalized into a list.
type CreateRequest struct {
	Content   string `json:"content"`
	Image     string `json:"image"`
	Tags      string `json:"tags"`
	IsPrivate bool   `json:"isPrivate"`
}

// Create validates and stores a new post owned by caller. New posts always
// start unbanned and unreported.
func (s *Service) Create(ctx context.Context, caller string, req CreateRequest) (*models.Post, error) {
	const op = "posts.Create"

	post := &models.Post{
		UserID:     caller,
		Content:    req.Content,
		Image:      req.Image,
		Tags:       models.SplitTags(req.Tags),
		IsPrivate:  req.IsPrivate,
		IsBanned:   false,
		IsReported: false,
		Likes:      []string{},
		CreatedAt:  time.Now(),
	}

	if errorList := models.ValidatePost(post); len(errorList) > 0 {
		return nil, apperr.Validation(op, "invalid post", errorList)
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, apperr.Internal(op, "unable to create post, try again later", err)
	}
	return post, nil
}

// Get returns a single post the caller may read. Unreadable posts are
// reported as missing rather than forbidden so their existence is not
// confirmed.
func (s *Service) Get(ctx context.Context, caller, postID string) (*models.Post, error) {
	const op = "posts.Get"

	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(op, "Post not found", postID)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to get post", err)
	}
	if !policy.CanRead(caller, post) {
		return nil, apperr.NotFound(op, "Post not found", postID)
	}
	return post, nil
}

// Update applies a typed partial update gated by the visibility policy:
// owners and moderators get the full field set, anyone else exactly the
// reported flag. Ban and unban travel through here via the moderator branch.
func (s *Service) Update(ctx context.Context, caller, postID string, update *models.PostUpdate) (*models.Post, error) {
	const op = "posts.Update"

	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(op, "Post not found", postID)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to update post", err)
	}

	isModerator := false
	if user, err := s.users.FindByID(ctx, caller); err == nil {
		isModerator = user.IsModerator
	}

	if !policy.CanWrite(caller, post, isModerator, update) {
		return nil, apperr.Forbidden(op, "You can update only your post", caller, postID)
	}

	if err := s.posts.Apply(ctx, postID, update); err != nil {
		return nil, apperr.Internal(op, "unable to update post", err)
	}

	updated, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(op, "unable to update post", err)
	}
	return updated, nil
}

// Report flags a post for moderation. It is the restricted-field write any
// caller who can read the post may make.
func (s *Service) Report(ctx context.Context, caller, postID string) (*models.Post, error) {
	reported := true
	return s.Update(ctx, caller, postID, &models.PostUpdate{IsReported: &reported})
}

// Delete removes a post. Owner-only, independent of moderator role. An
// attached image is released from the external store first; if the release
// fails the record is left intact. A crash after the release but before the
// record delete can leave a post pointing at a missing image; that window is
// accepted, the reverse (an orphaned image) is not.
func (s *Service) Delete(ctx context.Context, caller, postID string) error {
	const op = "posts.Delete"

	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "Post not found", postID)
	}
	if err != nil {
		return apperr.Internal(op, "unable to delete post", err)
	}

	if !policy.CanDelete(caller, post) {
		return apperr.Forbidden(op, "You can delete only your post", caller, postID)
	}

	if post.Image != "" {
		if err := s.images.Delete(ctx, post.Image); err != nil {
			return apperr.External(op, "cannot delete the post image", err)
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return apperr.Internal(op, "unable to delete post", err)
	}
	return nil
}

// LikeResult reports the toggle outcome and the authoritative like set after
// the mutation.
type LikeResult struct {
	State string // "liked" or "disliked"
	Likes []string
}

// ToggleLike adds the caller to the like set, or removes them when already
// present. Applying it twice restores the original set. The post is re-read
// after the mutation so the response never reflects a stale copy.
func (s *Service) ToggleLike(ctx context.Context, caller, postID string) (*LikeResult, error) {
	const op = "posts.ToggleLike"

	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(op, "Post not found", postID)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to like/dislike post", err)
	}

	state := "liked"
	if post.LikedBy(caller) {
		state = "disliked"
		err = s.posts.RemoveLike(ctx, postID, caller)
	} else {
		err = s.posts.AddLike(ctx, postID, caller)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to like/dislike post", err)
	}

	updated, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(op, "unable to like/dislike post", err)
	}
	return &LikeResult{State: state, Likes: updated.Likes}, nil
}

// UploadImage stores a post image for caller and returns its durable URL.
func (s *Service) UploadImage(ctx context.Context, caller, filename string, blob io.Reader) (string, error) {
	const op = "posts.UploadImage"

	if _, err := s.users.FindByID(ctx, caller); errors.Is(err, store.ErrNotFound) {
		return "", apperr.NotFound(op, "User not found", caller)
	} else if err != nil {
		return "", apperr.Internal(op, "unable to upload image", err)
	}

	url, err := s.images.Upload(ctx, caller, filename, blob)
	if err != nil {
		return "", apperr.External(op, "unable to upload image", err)
	}
	return url, nil
}
