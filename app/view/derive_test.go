package view

import (
	"fmt"
	"testing"
	"time"

	"lumina/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(id, title, category string) *models.Post {
	return &models.Post{
		ID:        id,
		Title:     title,
		Excerpt:   "Excerpt of " + title,
		Content:   "Body of " + title,
		Category:  category,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Comments:  []models.Comment{},
	}
}

func samplePosts() []*models.Post {
	return []*models.Post{
		post("1", "AI Rising", "Technology"),
		post("2", "Travel Tips", "Travel"),
	}
}

func TestDeriveVisibleStateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
		empty   bool
	}{
		{"no filters", Filters{}, []string{"1", "2"}, false},
		{"query case-insensitive", Filters{Query: "ai"}, []string{"1"}, false},
		{"category", Filters{Category: "Travel"}, []string{"2"}, false},
		{"query and mismatched category", Filters{Query: "ai", Category: "Travel"}, nil, true},
		{"query matches content", Filters{Query: "body of travel"}, []string{"2"}, false},
		{"query matches excerpt", Filters{Query: "EXCERPT OF AI"}, []string{"1"}, false},
		{"no match", Filters{Query: "zzz"}, nil, true},
		{"whitespace query is inactive", Filters{Query: "   "}, []string{"1", "2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := DeriveVisibleState(tt.filters, samplePosts())
			assert.False(t, vm.Loading)
			assert.Equal(t, tt.empty, vm.Empty)
			assert.Equal(t, len(tt.want), vm.Count)

			var got []string
			if vm.Featured != nil {
				got = append(got, vm.Featured.ID)
			}
			for _, p := range vm.Grid {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveVisibleStateFeaturedAndGrid(t *testing.T) {
	var posts []*models.Post
	for i := 0; i < 5; i++ {
		posts = append(posts, post(fmt.Sprint(i), fmt.Sprintf("Post %d", i), "Design"))
	}

	vm := DeriveVisibleState(Filters{}, posts)
	require.NotNil(t, vm.Featured)
	assert.Equal(t, "0", vm.Featured.ID)
	require.Len(t, vm.Grid, 4)
	for i, p := range vm.Grid {
		assert.Equal(t, fmt.Sprint(i+1), p.ID)
	}
}

func TestDeriveVisibleStateLoadingVersusEmpty(t *testing.T) {
	t.Run("not yet fetched is loading even with filters", func(t *testing.T) {
		vm := DeriveVisibleState(Filters{Query: "zzz"}, nil)
		assert.True(t, vm.Loading)
		assert.False(t, vm.Empty)
		assert.False(t, vm.NoPosts)
		assert.Nil(t, vm.Featured)
	})

	t.Run("fetched and filtered to nothing is empty, never loading", func(t *testing.T) {
		for _, category := range append([]string{""}, models.Categories...) {
			vm := DeriveVisibleState(Filters{Query: "no-such-text", Category: category}, samplePosts())
			assert.True(t, vm.Empty, category)
			assert.False(t, vm.Loading, category)
		}
	})

	t.Run("fetched empty store without filters", func(t *testing.T) {
		vm := DeriveVisibleState(Filters{}, []*models.Post{})
		assert.True(t, vm.NoPosts)
		assert.False(t, vm.Empty)
		assert.False(t, vm.Loading)
	})
}

func TestDeriveVisibleStateIsPure(t *testing.T) {
	posts := samplePosts()
	first := DeriveVisibleState(Filters{Query: "tips"}, posts)
	second := DeriveVisibleState(Filters{Query: "tips"}, posts)
	assert.Equal(t, first, second)
	assert.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
}
