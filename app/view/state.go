package view

import (
	"sync"

	"lumina/app/assistant"
	"lumina/app/models"
)

// Screen is the view currently shown.
type Screen int

const (
	Home Screen = iota
	Detail
	Create
	Edit
)

func (s Screen) String() string {
	switch s {
	case Detail:
		return "detail"
	case Create:
		return "create"
	case Edit:
		return "edit"
	default:
		return "home"
	}
}

// Token identifies the navigation that started a fetch. A result is
// applied only if no navigation happened since.
type Token struct {
	screen Screen
	postID string
	seq    uint64
}

// Draft is the edit buffer behind the create and edit forms.
type Draft struct {
	PostID   string
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Category string
	ImageURL string
}

// DraftFromPost fills a buffer for editing post.
func DraftFromPost(post *models.Post) Draft {
	return Draft{
		PostID:   post.ID,
		Title:    post.Title,
		Excerpt:  post.Excerpt,
		Content:  post.Content,
		Author:   post.Author,
		Category: post.Category,
		ImageURL: post.ImageURL,
	}
}

// Input converts the buffer into a create request.
func (d Draft) Input() models.PostInput {
	return models.PostInput{
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Author:   d.Author,
		Category: d.Category,
		ImageURL: d.ImageURL,
	}
}

// Patch converts the buffer into an update request.
func (d Draft) Patch() models.PostPatch {
	return models.PostPatch{
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Author:   d.Author,
		Category: d.Category,
		ImageURL: d.ImageURL,
	}
}

// Snapshot is a copy of the UI state at one instant.
type Snapshot struct {
	Screen   Screen
	PostID   string
	Post     *models.Post
	Draft    *Draft
	Filters  Filters
	MenuOpen bool
	Loading  bool
}

// State is the UI state container. Every change goes through one of its
// transition methods.
type State struct {
	mu       sync.Mutex
	screen   Screen
	postID   string
	post     *models.Post
	draft    *Draft
	filters  Filters
	menuOpen bool
	loading  bool
	failed   bool
	posts    []*models.Post
	seq      uint64
}

// NewState returns a container on the home screen with no snapshot loaded.
func NewState() *State {
	return &State{screen: Home}
}

// navigate must be called with mu held.
func (s *State) navigate(screen Screen, postID string) Token {
	s.seq++
	s.screen = screen
	s.postID = postID
	s.post = nil
	s.menuOpen = false
	if screen != Create && screen != Edit {
		s.draft = nil
	}
	return Token{screen: screen, postID: postID, seq: s.seq}
}

func (s *State) current(t Token) bool {
	return t.seq == s.seq && t.screen == s.screen && t.postID == s.postID
}

// NavigateHome shows the listing and starts a snapshot refresh.
func (s *State) NavigateHome() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.navigate(Home, "")
	s.loading = true
	s.failed = false
	return t
}

// ApplyPosts stores a fetched snapshot. It reports false and changes
// nothing when t is stale.
func (s *State) ApplyPosts(t Token, posts []*models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		return false
	}
	s.posts = make([]*models.Post, len(posts))
	for i, p := range posts {
		s.posts[i] = p.Clone()
	}
	s.loading = false
	s.failed = false
	return true
}

// NavigateToPost shows a single post and starts loading it.
func (s *State) NavigateToPost(id string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.navigate(Detail, id)
	s.loading = true
	s.failed = false
	return t
}

// ApplyPost stores the loaded detail post if t is still current.
func (s *State) ApplyPost(t Token, post *models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) || t.screen != Detail {
		return false
	}
	s.post = post.Clone()
	s.loading = false
	return true
}

// NavigateToCreate opens an empty create form.
func (s *State) NavigateToCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigate(Create, "")
	s.draft = &Draft{Category: models.Categories[0]}
	s.loading = false
}

// NavigateToEdit starts loading the post to edit. The form opens once
// ApplyEditPost fills the buffer.
func (s *State) NavigateToEdit(id string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.navigate(Edit, id)
	s.draft = nil
	s.loading = true
	s.failed = false
	return t
}

// ApplyEditPost fills the edit buffer from the loaded post.
func (s *State) ApplyEditPost(t Token, post *models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) || t.screen != Edit {
		return false
	}
	d := DraftFromPost(post)
	s.draft = &d
	s.loading = false
	return true
}

// FailLoad ends the loading phase of t after a failed fetch.
func (s *State) FailLoad(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		return false
	}
	s.loading = false
	s.failed = true
	return true
}

// UpdateDraft replaces the buffer contents with what the user typed. The
// post being edited cannot change.
func (s *State) UpdateDraft(d Draft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return false
	}
	d.PostID = s.draft.PostID
	s.draft = &d
	return true
}

// SubmitDraft writes a submitted create form into the buffer, opening a
// create buffer first when none is open, and returns the resulting state.
// The returned snapshot always carries a draft.
func (s *State) SubmitDraft(d Draft) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		s.navigate(Create, "")
		s.draft = &Draft{}
		s.loading = false
	}
	d.PostID = s.draft.PostID
	s.draft = &d
	return s.snapshot()
}

// ApplyGeneratedDraft copies an assistant draft into the buffer.
func (s *State) ApplyGeneratedDraft(g assistant.Draft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return false
	}
	d := *s.draft
	d.Title = g.Title
	d.Excerpt = g.Excerpt
	d.Content = g.Content
	s.draft = &d
	return true
}

// CancelEdit drops the buffer and returns home.
func (s *State) CancelEdit() Token {
	return s.NavigateHome()
}

// CompleteEdit records a confirmed create or update, drops the buffer and
// returns home.
func (s *State) CompleteEdit(saved *models.Post) Token {
	s.mu.Lock()
	if s.posts != nil && saved != nil {
		s.upsert(saved.Clone())
	}
	s.mu.Unlock()
	return s.NavigateHome()
}

func (s *State) upsert(post *models.Post) {
	for i, p := range s.posts {
		if p.ID == post.ID {
			s.posts[i] = post
			return
		}
	}
	s.posts = append([]*models.Post{post}, s.posts...)
}

// RemovePost drops a confirmed-deleted post and returns home.
func (s *State) RemovePost(id string) Token {
	s.mu.Lock()
	if s.posts != nil {
		kept := make([]*models.Post, 0, len(s.posts))
		for _, p := range s.posts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.posts = kept
	}
	s.mu.Unlock()
	return s.NavigateHome()
}

// AppendComment adds a server-confirmed comment to the open post. It
// reports false when postID is no longer the post on screen.
func (s *State) AppendComment(postID string, comment models.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == postID {
			p.AddComment(comment)
		}
	}
	if s.screen != Detail || s.postID != postID || s.post == nil {
		return false
	}
	s.post.AddComment(comment)
	return true
}

// SetSearch changes the query and shows the listing without refetching.
func (s *State) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Query = q
	s.navigate(Home, "")
	s.loading = s.posts == nil && !s.failed
}

// SetCategory changes the category filter and shows the listing without
// refetching. An empty category clears the filter.
func (s *State) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Category = category
	s.navigate(Home, "")
	s.loading = s.posts == nil && !s.failed
}

// ToggleMenu flips the mobile menu and returns its new state.
func (s *State) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// Loaded reports whether a listing snapshot has been fetched.
func (s *State) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts != nil
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot must be called with mu held.
func (s *State) snapshot() Snapshot {
	snap := Snapshot{
		Screen:   s.screen,
		PostID:   s.postID,
		Filters:  s.filters,
		MenuOpen: s.menuOpen,
		Loading:  s.loading,
	}
	if s.post != nil {
		snap.Post = s.post.Clone()
	}
	if s.draft != nil {
		d := *s.draft
		snap.Draft = &d
	}
	return snap
}

// Home derives the listing view model from the cached snapshot.
func (s *State) Home() ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []*models.Post
	if s.posts != nil {
		posts = make([]*models.Post, len(s.posts))
		for i, p := range s.posts {
			posts[i] = p.Clone()
		}
	}
	vm := DeriveVisibleState(s.filters, posts)
	if posts == nil && s.failed {
		vm.Loading = false
		vm.Failed = true
	}
	return vm
}
