package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Andryushik/MyDiary/models"
)

// MongoPostStore implements PostStore on a MongoDB collection.
type MongoPostStore struct {
	coll *mongo.Collection
}

func NewMongoPostStore(coll *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{coll: coll}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An unparsable id cannot reference any record.
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func buildPostFilter(f PostFilter) bson.M {
	query := bson.M{}
	if f.UserID != "" {
		query["userId"] = f.UserID
	}
	if f.UserIn != nil {
		query["userId"] = bson.M{"$in": f.UserIn}
	}
	if f.IsPrivate != nil {
		query["isPrivate"] = *f.IsPrivate
	}
	if f.IsBanned != nil {
		query["isBanned"] = *f.IsBanned
	}
	if f.IsReported != nil {
		query["isReported"] = *f.IsReported
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lte"] = *f.CreatedTo
		}
		query["createdAt"] = created
	}
	return query
}

func (s *MongoPostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var post models.Post
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) FindPage(ctx context.Context, filter PostFilter, order Order, page, limit int) ([]models.Post, error) {
	switch order {
	case OrderByLikes:
		return s.aggregatePage(ctx, filter, page, limit)
	default:
		return s.findPage(ctx, filter, page, limit)
	}
}

// findPage is the plain-query path used for the chronological ordering.
func (s *MongoPostStore) findPage(ctx context.Context, filter PostFilter, page, limit int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(Offset(page, limit))).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, buildPostFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// aggregatePage evaluates the like-count ordering. The like count is derived
// per candidate with $size, so this runs through the aggregation pipeline
// instead of a plain find.
func (s *MongoPostStore) aggregatePage(ctx context.Context, filter PostFilter, page, limit int) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildPostFilter(filter)}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "likesLength", Value: bson.D{{Key: "$size", Value: "$likes"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "likesLength", Value: -1}}}},
		{{Key: "$skip", Value: int64(Offset(page, limit))}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) Insert(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *MongoPostStore) Apply(ctx context.Context, id string, update *models.PostUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.IsPrivate != nil {
		set["isPrivate"] = *update.IsPrivate
	}
	if update.IsBanned != nil {
		set["isBanned"] = *update.IsBanned
	}
	if update.IsReported != nil {
		set["isReported"] = *update.IsReported
	}
	if len(set) == 0 {
		return nil
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLike appends userID to the like set. $push keeps insertion order, which
// the toggle semantics rely on.
func (s *MongoPostStore) AddLike(ctx context.Context, id, userID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) RemoveLike(ctx context.Context, id, userID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUserStore implements UserStore on a MongoDB collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *MongoUserStore) ApplyProfile(ctx context.Context, id string, update *models.ProfileUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Birthday != nil {
		set["birthday"] = *update.Birthday
	}
	if update.Country != nil {
		set["country"] = *update.Country
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.ProfilePicture != nil {
		set["profilePicture"] = *update.ProfilePicture
	}
	if len(set) == 0 {
		return nil
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Follow(ctx context.Context, id, targetID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$addToSet": bson.M{"following": targetID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Unfollow(ctx context.Context, id, targetID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"following": targetID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
