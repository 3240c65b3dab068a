package models

import "time"

// Post is a noticeboard entry created by a user.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Category  Category   `gorm:"size:32;index;not null" json:"category"`
	IsPinned  bool       `gorm:"index;not null;default:false" json:"is_pinned"`
	CreatedAt time.Time  `gorm:"index;not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`

	CommentCount int64  `gorm:"-" json:"comment_count"`
	ContentHTML  string `gorm:"-" json:"content_html,omitempty"`
}
