package repositories

import (
	"lumina/app/models"

	"github.com/google/uuid"
)

const seedContent = "In recent years, artificial intelligence has made significant strides in various fields, " +
	"including web development. From automated code generation to intelligent design tools, AI is " +
	"transforming the way developers create websites and applications. This article explores the latest " +
	"trends and technologies that are shaping the future of web development."

// SeedPost returns the example post served by a fresh store.
func SeedPost() *models.Post {
	return &models.Post{
		ID:        uuid.NewString(),
		Title:     "The Future of Web Development",
		Excerpt:   "How AI is reshaping how we build...",
		Content:   seedContent,
		Author:    "Alex Rivera",
		Category:  "Technology",
		ImageURL:  "https://picsum.photos/id/48/800/400",
		CreatedAt: models.Now(),
		ReadTime:  models.ReadTime(seedContent),
		Comments:  []models.Comment{},
	}
}
