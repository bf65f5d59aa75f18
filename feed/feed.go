// Package feed assembles the paginated post listings: a user's own timeline,
// the aggregated multi-author feed, and the moderation-only listings.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/models"
	"github.com/Andryushik/MyDiary/store"
)

const defaultLimit = 10

type Service struct {
	posts store.PostStore
	users store.UserStore
	loc   *time.Location
}

func NewService(posts store.PostStore, users store.UserStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{posts: posts, users: users, loc: loc}
}

func boolPtr(b bool) *bool { return &b }

func normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// dayRange extends an ISO calendar date to the inclusive day interval in the
// configured time zone.
func (s *Service) dayRange(op, date string) (*time.Time, *time.Time, error) {
	if date == "" {
		return nil, nil, nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, nil, apperr.Validation(op, "date must be an ISO calendar date (YYYY-MM-DD)", nil)
	}
	start := day
	end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &start, &end, nil
}

// Timeline returns one page of ownerID's own posts. The owner's "private"
// tab selects private posts without reapplying the ban exclusion, so owners
// do see their own banned private posts there; every other read is limited
// to public, unbanned posts. This asymmetry is a product decision carried
// over deliberately.
func (s *Service) Timeline(ctx context.Context, caller, ownerID, privacy, date string, page, limit int) ([]models.Post, error) {
	const op = "feed.Timeline"
	page, limit = normalize(page, limit)

	filter := store.PostFilter{UserID: ownerID}
	if caller == ownerID && privacy == "private" {
		filter.IsPrivate = boolPtr(true)
	} else {
		filter.IsPrivate = boolPtr(false)
		filter.IsBanned = boolPtr(false)
	}

	from, to, err := s.dayRange(op, date)
	if err != nil {
		return nil, err
	}
	filter.CreatedFrom, filter.CreatedTo = from, to

	posts, err := s.posts.FindPage(ctx, filter, store.OrderByCreated, page, limit)
	if err != nil {
		return nil, apperr.Internal(op, "unable to get timeline posts", err)
	}
	return posts, nil
}

// Feed returns one page of the aggregated feed for targetID's audience set
// (followees plus self). A user may only request their own feed; any other
// caller gets NotFound so the response does not confirm the target exists.
func (s *Service) Feed(ctx context.Context, caller, targetID string, order store.Order, date string, page, limit int) ([]models.Post, error) {
	const op = "feed.Feed"
	page, limit = normalize(page, limit)

	if caller != targetID {
		return nil, apperr.NotFound(op, "User feed not found", targetID)
	}

	user, err := s.users.FindByID(ctx, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(op, "User feed not found", targetID)
	}
	if err != nil {
		return nil, apperr.Internal(op, "unable to get feed posts", err)
	}

	audience := append(append([]string{}, user.Following...), targetID)

	filter := store.PostFilter{
		UserIn:    audience,
		IsPrivate: boolPtr(false),
		IsBanned:  boolPtr(false),
	}
	from, to, err := s.dayRange(op, date)
	if err != nil {
		return nil, err
	}
	filter.CreatedFrom, filter.CreatedTo = from, to

	posts, err := s.posts.FindPage(ctx, filter, order, page, limit)
	if err != nil {
		return nil, apperr.Internal(op, "unable to get feed posts", err)
	}
	return posts, nil
}

// requireModerator gates the moderation-only listings: the caller must
// request through their own id and hold the moderator role.
func (s *Service) requireModerator(ctx context.Context, op, caller, targetID string) error {
	user, err := s.users.FindByID(ctx, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Forbidden(op, "You do not have moderation permission!", caller, targetID)
	}
	if err != nil {
		return apperr.Internal(op, "unable to check moderation permission", err)
	}
	if caller != targetID || !user.IsModerator {
		return apperr.Forbidden(op, "You do not have moderation permission!", caller, targetID)
	}
	return nil
}

// Reported lists posts flagged by users and not yet banned. Moderator-only;
// bypasses the privacy filter by design.
func (s *Service) Reported(ctx context.Context, caller, targetID string, page, limit int) ([]models.Post, error) {
	const op = "feed.Reported"
	page, limit = normalize(page, limit)

	if err := s.requireModerator(ctx, op, caller, targetID); err != nil {
		return nil, err
	}

	filter := store.PostFilter{
		IsBanned:   boolPtr(false),
		IsReported: boolPtr(true),
	}
	posts, err := s.posts.FindPage(ctx, filter, store.OrderByCreated, page, limit)
	if err != nil {
		return nil, apperr.Internal(op, "unable to get reported posts", err)
	}
	return posts, nil
}

// Banned lists banned posts. Moderator-only; the one read path that includes
// banned records.
func (s *Service) Banned(ctx context.Context, caller, targetID string, page, limit int) ([]models.Post, error) {
	const op = "feed.Banned"
	page, limit = normalize(page, limit)

	if err := s.requireModerator(ctx, op, caller, targetID); err != nil {
		return nil, err
	}

	filter := store.PostFilter{IsBanned: boolPtr(true)}
	posts, err := s.posts.FindPage(ctx, filter, store.OrderByCreated, page, limit)
	if err != nil {
		return nil, apperr.Internal(op, "unable to get banned posts", err)
	}
	return posts, nil
}
