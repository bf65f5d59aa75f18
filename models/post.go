package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Content    string             `bson:"content" json:"content"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Tags       []string           `bson:"tags" json:"tags"`
	IsPrivate  bool               `bson:"isPrivate" json:"isPrivate"`
	IsBanned   bool               `bson:"isBanned" json:"isBanned"`
	IsReported bool               `bson:"isReported" json:"isReported"`
	Likes      []string           `bson:"likes" json:"likes"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// LikedBy reports whether userID is present in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// SplitTags normalizes space-delimited tag text into a tag list, dropping
// empty entries from repeated spaces.
func SplitTags(text string) []string {
	tags := []string{}
	for _, t := range strings.Fields(text) {
		tags = append(tags, t)
	}
	return tags
}

// ValidatePost returns the list of violated fields for a post about to be
// created. An empty list means the post is valid.
func ValidatePost(p *Post) []string {
	errorList := []string{}
	if p.UserID == "" {
		errorList = append(errorList, "userId is a required field")
	}
	if strings.TrimSpace(p.Content) == "" && p.Image == "" {
		errorList = append(errorList, "post must have content or an image")
	}
	for _, tag := range p.Tags {
		if strings.ContainsAny(tag, " \t\n") {
			errorList = append(errorList, "tags may not contain whitespace")
			break
		}
	}
	return errorList
}
