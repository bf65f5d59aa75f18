// Package policy holds the pure visibility and mutation rules for posts.
// All decisions are functions of the caller identity and the post record;
// nothing here touches storage.
package policy

import "github.com/Andryushik/MyDiary/models"

// CanRead reports whether caller may see the post in normal (non-moderation)
// reads. Banned posts are hidden from everyone; private posts only from
// non-owners. Ownership is a string comparison against the authenticated id.
func CanRead(caller string, post *models.Post) bool {
	if post.IsBanned {
		return false
	}
	return !post.IsPrivate || post.UserID == caller
}

// CanWrite reports whether caller may apply update to the post. Owners and
// moderators may change any field. Anyone else is limited to reporting: the
// update must set exactly the reported flag, and the caller must be able to
// read the post they report.
func CanWrite(caller string, post *models.Post, callerIsModerator bool, update *models.PostUpdate) bool {
	if post.UserID == caller || callerIsModerator {
		return true
	}
	return update.ReportOnly() && CanRead(caller, post)
}

// CanDelete reports whether caller may delete the post. Deletion is strictly
// owner-only; moderator role does not grant it.
func CanDelete(caller string, post *models.Post) bool {
	return post.UserID == caller
}
