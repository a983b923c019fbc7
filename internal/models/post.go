package models

import (
	"time"

	"gorm.io/gorm"
)

// Reaction is a single like or dislike entry. Sequences are kept
// most-recent-first and a user appears at most once per sequence.
type Reaction struct {
	User uint `json:"user"`
}

// Comment lives inside its post document and is not independently
// addressable outside of it.
type Comment struct {
	ID     string    `json:"id"`
	User   uint      `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is stored as a single document: the reaction and comment sequences
// are serialized into the row itself, so a Save persists the whole state
// and concurrent writers are last-write-wins at the row level.
//
// Name and Avatar are snapshots of the author's profile at creation time.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user"`
	Text      string         `gorm:"not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Likes     []Reaction     `gorm:"type:jsonb;serializer:json" json:"likes"`
	Dislikes  []Reaction     `gorm:"type:jsonb;serializer:json" json:"dislikes"`
	Comments  []Comment      `gorm:"type:jsonb;serializer:json" json:"comments"`
	Date      time.Time      `gorm:"autoCreateTime;index" json:"date"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasReaction reports whether userID already appears in entries.
func HasReaction(entries []Reaction, userID uint) bool {
	return reactionIndex(entries, userID) >= 0
}

// PushReaction prepends an entry for userID, keeping the sequence
// most-recent-first.
func PushReaction(entries []Reaction, userID uint) []Reaction {
	return append([]Reaction{{User: userID}}, entries...)
}

// RemoveReaction deletes the first entry belonging to userID. The input is
// returned unchanged when userID has no entry.
func RemoveReaction(entries []Reaction, userID uint) []Reaction {
	i := reactionIndex(entries, userID)
	if i < 0 {
		return entries
	}
	return append(entries[:i:i], entries[i+1:]...)
}

func reactionIndex(entries []Reaction, userID uint) int {
	for i, e := range entries {
		if e.User == userID {
			return i
		}
	}
	return -1
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// RemoveCommentByAuthor deletes the first comment authored by userID.
// Removal deliberately scans by author rather than comment id: when a user
// has several comments on one post, the newest one wins regardless of which
// id was addressed. This mirrors long-standing client-visible behavior.
func (p *Post) RemoveCommentByAuthor(userID uint) {
	for i := range p.Comments {
		if p.Comments[i].User == userID {
			p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
			return
		}
	}
}
