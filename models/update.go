package models

// PostUpdate is a typed partial update. Nil fields are left untouched; this
// replaces merging an arbitrary request body into the record.
type PostUpdate struct {
	Content    *string  `json:"content,omitempty"`
	Image      *string  `json:"image,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsPrivate  *bool    `json:"isPrivate,omitempty"`
	IsBanned   *bool    `json:"isBanned,omitempty"`
	IsReported *bool    `json:"isReported,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u *PostUpdate) IsEmpty() bool {
	return u.Content == nil && u.Image == nil && u.Tags == nil &&
		u.IsPrivate == nil && u.IsBanned == nil && u.IsReported == nil
}

// ReportOnly reports whether the update sets the reported flag to true and
// nothing else. This is the only write a non-owner, non-moderator may make.
func (u *PostUpdate) ReportOnly() bool {
	return u.Content == nil && u.Image == nil && u.Tags == nil &&
		u.IsPrivate == nil && u.IsBanned == nil &&
		u.IsReported != nil && *u.IsReported
}

// ProfileUpdate is the typed partial update for a user's own profile.
// Credential and role fields are deliberately absent.
type ProfileUpdate struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Birthday       *string `json:"birthday,omitempty"`
	Country        *string `json:"country,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Apply copies the set fields onto usr.
func (u *ProfileUpdate) Apply(usr *User) {
	if u.FirstName != nil {
		usr.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		usr.LastName = *u.LastName
	}
	if u.Birthday != nil {
		usr.Birthday = *u.Birthday
	}
	if u.Country != nil {
		usr.Country = *u.Country
	}
	if u.Bio != nil {
		usr.Bio = *u.Bio
	}
	if u.ProfilePicture != nil {
		usr.ProfilePicture = *u.ProfilePicture
	}
}

// Apply copies the set fields onto p.
func (u *PostUpdate) Apply(p *Post) {
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Tags != nil {
		p.Tags = u.Tags
	}
	if u.IsPrivate != nil {
		p.IsPrivate = *u.IsPrivate
	}
	if u.IsBanned != nil {
		p.IsBanned = *u.IsBanned
	}
	if u.IsReported != nil {
		p.IsReported = *u.IsReported
	}
}
