package models

import "time"

// Post represents a blog post with its comment thread.
type Post struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	Title     string    `json:"title" bson:"title" validate:"required,max=200"`
	Excerpt   string    `json:"excerpt" bson:"excerpt" validate:"required"`
	Content   string    `json:"content" bson:"content" validate:"required"`
	Author    string    `json:"author" bson:"author" validate:"required,max=100"`
	Category  string    `json:"category" bson:"category" validate:"required"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl" validate:"required"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ReadTime  string    `json:"readTime" bson:"readTime" validate:"required"`
	Comments  []Comment `json:"comments" bson:"comments" validate:"dive"`
}

// Comment represents a reply attached to exactly one post.
type Comment struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	Content   string    `json:"content" bson:"content" validate:"required,max=1000"`
	Author    string    `json:"author" bson:"author" validate:"required,max=100"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// PostInput carries the fields a client supplies when creating a post.
type PostInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Excerpt  string `json:"excerpt" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required,max=100"`
	Category string `json:"category" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

// PostPatch is a partial update. Empty fields keep their stored value.
type PostPatch struct {
	Title    string `json:"title,omitempty" validate:"omitempty,max=200"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content,omitempty"`
	Author   string `json:"author,omitempty" validate:"omitempty,max=100"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`

	// ReadTime is filled in by the service whenever Content is set.
	ReadTime string `json:"-"`
}

// CommentInput carries the fields a client supplies when commenting.
type CommentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
	Author  string `json:"author" validate:"required,max=100"`
}

// Categories is the suggested category list offered by the UI. The server
// accepts any non-empty category.
var Categories = []string{"Technology", "Design", "Travel", "Lifestyle", "Food", "Business"}

// DraftInput asks the draft assistant for a post about Topic.
type DraftInput struct {
	Topic string `json:"topic" validate:"required,max=200"`
	Tone  string `json:"tone" validate:"max=50"`
}
