package view

import (
	"testing"
	"time"

	"lumina/app/assistant"
	"lumina/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeLoadingUntilFirstSnapshot(t *testing.T) {
	s := NewState()
	tok := s.NavigateHome()
	assert.True(t, s.Home().Loading)
	assert.True(t, s.Snapshot().Loading)

	require.True(t, s.ApplyPosts(tok, samplePosts()))
	vm := s.Home()
	assert.False(t, vm.Loading)
	assert.Equal(t, "1", vm.Featured.ID)
	assert.False(t, s.Snapshot().Loading)
}

func TestHomeFailedFirstLoadIsNotLoading(t *testing.T) {
	s := NewState()
	require.True(t, s.FailLoad(s.NavigateHome()))

	vm := s.Home()
	assert.False(t, vm.Loading)
	assert.True(t, vm.Failed)
	assert.False(t, vm.Empty)
	assert.False(t, s.Snapshot().Loading)

	s.SetSearch("ai")
	assert.True(t, s.Home().Failed)
	assert.False(t, s.Snapshot().Loading)

	tok := s.NavigateHome()
	assert.True(t, s.Home().Loading)
	require.True(t, s.ApplyPosts(tok, samplePosts()))
	assert.False(t, s.Home().Failed)
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	t.Run("post load abandoned for home", func(t *testing.T) {
		s := NewState()
		stale := s.NavigateToPost("1")
		s.NavigateHome()

		assert.False(t, s.ApplyPost(stale, post("1", "AI Rising", "Technology")))
		snap := s.Snapshot()
		assert.Equal(t, Home, snap.Screen)
		assert.Nil(t, snap.Post)
	})

	t.Run("post load superseded by another post", func(t *testing.T) {
		s := NewState()
		first := s.NavigateToPost("1")
		second := s.NavigateToPost("2")

		assert.False(t, s.ApplyPost(first, post("1", "AI Rising", "Technology")))
		assert.True(t, s.ApplyPost(second, post("2", "Travel Tips", "Travel")))
		assert.Equal(t, "2", s.Snapshot().Post.ID)
	})

	t.Run("revisiting the same post still invalidates the older token", func(t *testing.T) {
		s := NewState()
		old := s.NavigateToPost("1")
		s.NavigateHome()
		fresh := s.NavigateToPost("1")

		assert.False(t, s.ApplyPost(old, post("1", "old", "Technology")))
		assert.True(t, s.ApplyPost(fresh, post("1", "new", "Technology")))
		assert.Equal(t, "new", s.Snapshot().Post.Title)
	})

	t.Run("listing refresh abandoned", func(t *testing.T) {
		s := NewState()
		stale := s.NavigateHome()
		s.NavigateToCreate()
		assert.False(t, s.ApplyPosts(stale, samplePosts()))
		assert.False(t, s.Loaded())
	})

	t.Run("edit load abandoned", func(t *testing.T) {
		s := NewState()
		stale := s.NavigateToEdit("1")
		s.CancelEdit()
		assert.False(t, s.ApplyEditPost(stale, post("1", "AI Rising", "Technology")))
		assert.Nil(t, s.Snapshot().Draft)
	})
}

func TestEditFlow(t *testing.T) {
	s := NewState()
	tok := s.NavigateToEdit("1")

	snap := s.Snapshot()
	assert.Equal(t, Edit, snap.Screen)
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.Draft)

	require.True(t, s.ApplyEditPost(tok, post("1", "AI Rising", "Technology")))
	snap = s.Snapshot()
	require.NotNil(t, snap.Draft)
	assert.Equal(t, "1", snap.Draft.PostID)
	assert.Equal(t, "AI Rising", snap.Draft.Title)

	require.True(t, s.UpdateDraft(Draft{PostID: "other", Title: "Typed"}))
	snap = s.Snapshot()
	assert.Equal(t, "1", snap.Draft.PostID)
	assert.Equal(t, "Typed", snap.Draft.Title)

	page := NewFormPage(snap)
	assert.True(t, page.Editing)
	assert.Equal(t, "/posts/1/edit", page.Action)

	s.CompleteEdit(nil)
	snap = s.Snapshot()
	assert.Equal(t, Home, snap.Screen)
	assert.Nil(t, snap.Draft)
}

func TestCreateFlowWithGeneratedDraft(t *testing.T) {
	s := NewState()
	s.NavigateToCreate()

	snap := s.Snapshot()
	assert.Equal(t, Create, snap.Screen)
	require.NotNil(t, snap.Draft)
	assert.Equal(t, "Technology", snap.Draft.Category)
	assert.Equal(t, "/posts", NewFormPage(snap).Action)

	require.True(t, s.UpdateDraft(Draft{Author: "Sam", Category: "Food"}))
	require.True(t, s.ApplyGeneratedDraft(assistant.Draft{Title: "T", Excerpt: "E", Content: "C"}))

	d := s.Snapshot().Draft
	assert.Equal(t, Draft{Title: "T", Excerpt: "E", Content: "C", Author: "Sam", Category: "Food"}, *d)

	s.CancelEdit()
	assert.Nil(t, s.Snapshot().Draft)
	assert.False(t, s.ApplyGeneratedDraft(assistant.Draft{Title: "late"}))
}

func TestSubmitDraftOpensBufferWhenCleared(t *testing.T) {
	s := NewState()
	s.NavigateToCreate()
	s.CancelEdit()
	require.Nil(t, s.Snapshot().Draft)

	snap := s.SubmitDraft(Draft{Title: "Late", Author: "Ann"})
	require.NotNil(t, snap.Draft)
	assert.Equal(t, Create, snap.Screen)
	assert.Equal(t, "Late", snap.Draft.Title)
	assert.Empty(t, snap.Draft.PostID)
}

func TestSubmitDraftKeepsEditTarget(t *testing.T) {
	s := NewState()
	tok := s.NavigateToEdit("7")
	require.True(t, s.ApplyEditPost(tok, &models.Post{ID: "7", Title: "Old"}))

	snap := s.SubmitDraft(Draft{Title: "New"})
	assert.Equal(t, "7", snap.Draft.PostID)
	assert.Equal(t, "New", snap.Draft.Title)
}

func TestCompleteEditUpdatesSnapshot(t *testing.T) {
	s := NewState()
	require.True(t, s.ApplyPosts(s.NavigateHome(), samplePosts()))

	s.NavigateToCreate()
	created := post("3", "Fresh", "Food")
	s.CompleteEdit(created)
	assert.Equal(t, "3", s.Home().Featured.ID)

	renamed := post("2", "Travel Tricks", "Travel")
	s.CompleteEdit(renamed)
	vm := s.Home()
	assert.Equal(t, 3, vm.Count)
	assert.Equal(t, "Travel Tricks", vm.Grid[1].Title)
}

func TestRemovePost(t *testing.T) {
	s := NewState()
	require.True(t, s.ApplyPosts(s.NavigateHome(), samplePosts()))
	s.NavigateToPost("1")

	s.RemovePost("1")
	assert.Equal(t, Home, s.Snapshot().Screen)
	vm := s.Home()
	assert.Equal(t, 1, vm.Count)
	assert.Equal(t, "2", vm.Featured.ID)
}

func TestAppendCommentUsesServerComment(t *testing.T) {
	s := NewState()
	tok := s.NavigateToPost("1")
	require.True(t, s.ApplyPost(tok, post("1", "AI Rising", "Technology")))

	c := models.Comment{ID: "server-id", Content: "Great", Author: "Kim", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.True(t, s.AppendComment("1", c))

	got := s.Snapshot().Post.Comments
	require.Len(t, got, 1)
	assert.Equal(t, c, got[0])

	s.NavigateHome()
	assert.False(t, s.AppendComment("1", c))
}

func TestFiltersAreLocal(t *testing.T) {
	s := NewState()
	require.True(t, s.ApplyPosts(s.NavigateHome(), samplePosts()))
	s.NavigateToPost("2")

	s.SetCategory("Travel")
	snap := s.Snapshot()
	assert.Equal(t, Home, snap.Screen)
	assert.False(t, snap.Loading)
	assert.Equal(t, "2", s.Home().Featured.ID)

	s.SetSearch("ai")
	assert.True(t, s.Home().Empty)

	s.SetCategory("")
	assert.Equal(t, "1", s.Home().Featured.ID)
}

func TestToggleMenu(t *testing.T) {
	s := NewState()
	assert.True(t, s.ToggleMenu())
	assert.True(t, s.Snapshot().MenuOpen)
	assert.False(t, s.ToggleMenu())

	s.ToggleMenu()
	s.NavigateToCreate()
	assert.False(t, s.Snapshot().MenuOpen)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState()
	tok := s.NavigateToPost("1")
	require.True(t, s.ApplyPost(tok, post("1", "AI Rising", "Technology")))

	snap := s.Snapshot()
	snap.Post.Title = "mutated"
	assert.Equal(t, "AI Rising", s.Snapshot().Post.Title)

	require.True(t, s.ApplyPosts(s.NavigateHome(), samplePosts()))
	s.Home().Featured.Title = "mutated"
	assert.Equal(t, "AI Rising", s.Home().Featured.Title)
}
