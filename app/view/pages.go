package view

import "lumina/app/models"

// Tones offered by the draft assistant form.
var Tones = []string{"professional", "casual", "enthusiastic", "witty", "informative"}

// Nav is the header shared by every page.
type Nav struct {
	Filters    Filters
	Categories []string
	MenuOpen   bool
}

func newNav(snap Snapshot) Nav {
	return Nav{Filters: snap.Filters, Categories: models.Categories, MenuOpen: snap.MenuOpen}
}

type HomePage struct {
	Nav
	List  ViewModel
	Error string
}

type DetailPage struct {
	Nav
	Post          *models.Post
	Blocks        []Block
	Comment       models.CommentInput
	CommentErrors map[string]string
	Error         string
}

type FormPage struct {
	Nav
	Draft      Draft
	Editing    bool
	Action     string
	Errors     map[string]string
	Error      string
	Topic      string
	Tone       string
	Tones      []string
	DraftError string
}

type ErrorPage struct {
	Nav
	Status  int
	Message string
}

// NewHomePage builds the listing page.
func NewHomePage(snap Snapshot, vm ViewModel) HomePage {
	return HomePage{Nav: newNav(snap), List: vm}
}

// NewDetailPage builds the page for the post on screen. snap.Post must be set.
func NewDetailPage(snap Snapshot) DetailPage {
	return DetailPage{Nav: newNav(snap), Post: snap.Post, Blocks: RenderContent(snap.Post.Content)}
}

// NewFormPage builds the create or edit form from the buffer.
func NewFormPage(snap Snapshot) FormPage {
	page := FormPage{Nav: newNav(snap), Tone: models.DefaultTone, Tones: Tones}
	if snap.Draft != nil {
		page.Draft = *snap.Draft
	}
	page.Editing = snap.Screen == Edit
	if page.Editing {
		page.Action = "/posts/" + page.Draft.PostID + "/edit"
	} else {
		page.Action = "/posts"
	}
	return page
}

// NewErrorPage builds a failure page.
func NewErrorPage(snap Snapshot, status int, message string) ErrorPage {
	return ErrorPage{Nav: newNav(snap), Status: status, Message: message}
}
