package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("createdAt cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = Now()
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// AddComment appends a comment to the end of the thread
func (p *Post) AddComment(comment Comment) {
	p.Comments = append(p.Comments, comment)
}

// Apply overwrites every field the patch supplies.
func (p *Post) Apply(patch PostPatch) {
	for field, value := range patch.Fields() {
		switch field {
		case "title":
			p.Title = value
		case "excerpt":
			p.Excerpt = value
		case "content":
			p.Content = value
		case "author":
			p.Author = value
		case "category":
			p.Category = value
		case "imageUrl":
			p.ImageURL = value
		case "readTime":
			p.ReadTime = value
		}
	}
}

// Clone returns a copy that shares no comment storage with p.
func (p *Post) Clone() *Post {
	c := *p
	c.Comments = make([]Comment, len(p.Comments))
	copy(c.Comments, p.Comments)
	return &c
}

// Normalize replaces a nil comment list so it encodes as an empty array.
func (p *Post) Normalize() {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// NewPost builds an unsaved post from client input.
func NewPost(in PostInput) *Post {
	return &Post{
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Author:   in.Author,
		Category: in.Category,
		ImageURL: in.ImageURL,
		Comments: []Comment{},
	}
}

// Validate checks that every required field of the input is present
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// Trim strips surrounding whitespace from every field.
func (in *PostInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = strings.TrimSpace(in.Content)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// Trim strips surrounding whitespace from every supplied field.
func (patch *PostPatch) Trim() {
	patch.Title = strings.TrimSpace(patch.Title)
	patch.Excerpt = strings.TrimSpace(patch.Excerpt)
	patch.Content = strings.TrimSpace(patch.Content)
	patch.Author = strings.TrimSpace(patch.Author)
	patch.Category = strings.TrimSpace(patch.Category)
	patch.ImageURL = strings.TrimSpace(patch.ImageURL)
}

// Validate applies the create limits to the fields the patch supplies.
func (patch *PostPatch) Validate() error {
	return validate.Struct(patch)
}

// Fields returns the supplied fields keyed by their document names.
func (patch PostPatch) Fields() map[string]string {
	fields := make(map[string]string)
	set := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			fields[name] = value
		}
	}
	set("title", patch.Title)
	set("excerpt", patch.Excerpt)
	set("content", patch.Content)
	set("author", patch.Author)
	set("category", patch.Category)
	set("imageUrl", patch.ImageURL)
	if _, ok := fields["content"]; ok && patch.ReadTime != "" {
		fields["readTime"] = patch.ReadTime
	}
	return fields
}

// Empty reports whether the patch supplies no fields.
func (patch PostPatch) Empty() bool {
	return len(patch.Fields()) == 0
}

// Now returns the current time at the precision every backend can store.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
