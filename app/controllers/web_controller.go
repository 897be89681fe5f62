package controllers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"lumina/app/assistant"
	"lumina/app/client"
	"lumina/app/models"
	"lumina/app/view"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "detail", "form", "error"}

// Gateway is the data access the web UI needs. *client.Client implements it.
type Gateway interface {
	ListPosts(ctx context.Context) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID string, in models.CommentInput) (*models.Comment, error)
	GenerateDraft(ctx context.Context, in models.DraftInput) (assistant.Draft, error)
}

// WebController renders the server-side UI. Every state change goes
// through view.State; templates only see page models.
type WebController struct {
	gateway Gateway
	state   *view.State
	pages   map[string]*template.Template
	logger  *slog.Logger
}

// NewWebController parses the embedded templates.
func NewWebController(gateway Gateway, state *view.State, logger *slog.Logger) (*WebController, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &WebController{gateway: gateway, state: state, pages: pages, logger: logger}, nil
}

func (wc *WebController) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := wc.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		wc.logger.Error("template execution failed", "page", name, "error", err)
		http.Error(w, "Template execution error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (wc *WebController) renderError(w http.ResponseWriter, status int, message string) {
	wc.render(w, status, "error", view.NewErrorPage(wc.state.Snapshot(), status, message))
}

// statusFor maps a gateway failure to the status shown to the browser.
func statusFor(err error) int {
	var opErr *client.OperationError
	if errors.As(err, &opErr) {
		switch opErr.Status {
		case http.StatusBadRequest, http.StatusNotFound:
			return opErr.Status
		}
	}
	return http.StatusBadGateway
}

// messageFor is the user-facing text for a gateway failure.
func messageFor(err error) string {
	var opErr *client.OperationError
	if errors.As(err, &opErr) && opErr.Status != 0 {
		return fmt.Sprintf("Could not %s: %s", opErr.Op, opErr.Message)
	}
	return "The blog service is unreachable, please try again."
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func draftFromForm(r *http.Request) view.Draft {
	return view.Draft{
		Title:    r.PostFormValue("title"),
		Excerpt:  r.PostFormValue("excerpt"),
		Content:  r.PostFormValue("content"),
		Author:   r.PostFormValue("author"),
		Category: r.PostFormValue("category"),
		ImageURL: r.PostFormValue("imageUrl"),
	}
}

// refresh navigates home and reloads the listing snapshot.
func (wc *WebController) refresh(ctx context.Context) error {
	token := wc.state.NavigateHome()
	posts, err := wc.gateway.ListPosts(ctx)
	if err != nil {
		wc.state.FailLoad(token)
		wc.logger.Warn("listing refresh failed", "error", err)
		return err
	}
	wc.state.ApplyPosts(token, posts)
	return nil
}

// Home renders the listing. Filter parameters apply to the cached snapshot
// and only trigger a fetch when nothing has been loaded yet.
func (wc *WebController) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	_, hasQuery := q["q"]
	_, hasCategory := q["category"]

	var loadErr error
	if !(hasQuery || hasCategory) || !wc.state.Loaded() {
		loadErr = wc.refresh(r.Context())
	}
	if hasQuery {
		wc.state.SetSearch(q.Get("q"))
	}
	if hasCategory {
		wc.state.SetCategory(q.Get("category"))
	}
	if q.Get("menu") == "toggle" {
		wc.state.ToggleMenu()
	}

	page := view.NewHomePage(wc.state.Snapshot(), wc.state.Home())
	if loadErr != nil {
		page.Error = messageFor(loadErr)
	}
	wc.render(w, http.StatusOK, "home", page)
}

// Show renders a single post.
func (wc *WebController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	token := wc.state.NavigateToPost(id)
	post, err := wc.gateway.GetPost(r.Context(), id)
	if err != nil {
		wc.state.FailLoad(token)
		if client.IsNotFound(err) {
			wc.renderError(w, http.StatusNotFound, "Post not found")
			return
		}
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	wc.state.ApplyPost(token, post)

	snap := wc.state.Snapshot()
	if snap.Post == nil || snap.PostID != id {
		wc.renderError(w, http.StatusConflict, "The page changed while loading, please retry.")
		return
	}
	wc.render(w, http.StatusOK, "detail", view.NewDetailPage(snap))
}

// New renders an empty create form.
func (wc *WebController) New(w http.ResponseWriter, r *http.Request) {
	wc.state.NavigateToCreate()
	wc.render(w, http.StatusOK, "form", view.NewFormPage(wc.state.Snapshot()))
}

// ensureBuffer makes sure a create or edit buffer exists for the form
// being submitted.
func (wc *WebController) ensureBuffer(ctx context.Context, editID string) error {
	snap := wc.state.Snapshot()
	if editID == "" {
		if snap.Draft == nil {
			wc.state.NavigateToCreate()
		}
		return nil
	}
	if snap.Screen == view.Edit && snap.PostID == editID && snap.Draft != nil {
		return nil
	}
	return wc.loadEdit(ctx, editID)
}

func (wc *WebController) loadEdit(ctx context.Context, id string) error {
	token := wc.state.NavigateToEdit(id)
	post, err := wc.gateway.GetPost(ctx, id)
	if err != nil {
		wc.state.FailLoad(token)
		return err
	}
	wc.state.ApplyEditPost(token, post)
	return nil
}

// GenerateDraft fills the open form from the draft assistant. Failures
// keep the form open with its contents for another try.
func (wc *WebController) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	if err := wc.ensureBuffer(r.Context(), ""); err != nil {
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	wc.state.UpdateDraft(draftFromForm(r))

	in := models.DraftInput{Topic: r.PostFormValue("topic"), Tone: r.PostFormValue("tone")}
	draft, err := wc.gateway.GenerateDraft(r.Context(), in)
	status := http.StatusOK
	if err == nil {
		wc.state.ApplyGeneratedDraft(draft)
	}

	page := view.NewFormPage(wc.state.Snapshot())
	page.Topic = in.Topic
	if in.Tone != "" {
		page.Tone = in.Tone
	}
	if err != nil {
		status = statusFor(err)
		page.DraftError = messageFor(err)
		if fields := client.FieldErrors(err); fields["topic"] != "" {
			page.DraftError = "Topic " + fields["topic"]
		}
	}
	wc.render(w, status, "form", page)
}

// Create publishes the create form.
func (wc *WebController) Create(w http.ResponseWriter, r *http.Request) {
	snap := wc.state.SubmitDraft(draftFromForm(r))

	post, err := wc.gateway.CreatePost(r.Context(), snap.Draft.Input())
	if err != nil {
		wc.renderFormError(w, snap, err)
		return
	}
	wc.state.CompleteEdit(post)
	redirect(w, r, "/")
}

// Edit loads a post into the edit form.
func (wc *WebController) Edit(w http.ResponseWriter, r *http.Request) {
	if err := wc.loadEdit(r.Context(), mux.Vars(r)["id"]); err != nil {
		if client.IsNotFound(err) {
			wc.renderError(w, http.StatusNotFound, "Post not found")
			return
		}
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	wc.render(w, http.StatusOK, "form", view.NewFormPage(wc.state.Snapshot()))
}

// Update saves the edit form.
func (wc *WebController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := wc.ensureBuffer(r.Context(), id); err != nil {
		if client.IsNotFound(err) {
			wc.renderError(w, http.StatusNotFound, "Post not found")
			return
		}
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	d := draftFromForm(r)
	wc.state.UpdateDraft(d)
	snap := wc.state.Snapshot()
	if snap.Draft == nil {
		d.PostID = id
		snap.Draft = &d
	}

	post, err := wc.gateway.UpdatePost(r.Context(), id, d.Patch())
	if err != nil {
		wc.renderFormError(w, snap, err)
		return
	}
	wc.state.CompleteEdit(post)
	redirect(w, r, "/")
}

func (wc *WebController) renderFormError(w http.ResponseWriter, snap view.Snapshot, err error) {
	page := view.NewFormPage(snap)
	page.Errors = client.FieldErrors(err)
	page.Error = messageFor(err)
	wc.render(w, statusFor(err), "form", page)
}

// Cancel abandons the create or edit form.
func (wc *WebController) Cancel(w http.ResponseWriter, r *http.Request) {
	wc.state.CancelEdit()
	redirect(w, r, "/")
}

// Delete removes a post once the API confirms it.
func (wc *WebController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := wc.gateway.DeletePost(r.Context(), id); err != nil {
		if client.IsNotFound(err) {
			wc.renderError(w, http.StatusNotFound, "Post not found")
			return
		}
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	wc.state.RemovePost(id)
	redirect(w, r, "/")
}

// Comment appends a comment and shows the post again.
func (wc *WebController) Comment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	in := models.CommentInput{
		Content: strings.TrimSpace(r.PostFormValue("content")),
		Author:  strings.TrimSpace(r.PostFormValue("author")),
	}

	comment, err := wc.gateway.AddComment(r.Context(), id, in)
	if err == nil {
		wc.state.AppendComment(id, *comment)
		redirect(w, r, "/posts/"+id+"#comments")
		return
	}
	if client.IsNotFound(err) {
		wc.renderError(w, http.StatusNotFound, "Post not found")
		return
	}

	snap := wc.state.Snapshot()
	if snap.Screen != view.Detail || snap.PostID != id || snap.Post == nil {
		wc.renderError(w, statusFor(err), messageFor(err))
		return
	}
	page := view.NewDetailPage(snap)
	page.Comment = in
	page.CommentErrors = client.FieldErrors(err)
	page.Error = messageFor(err)
	wc.render(w, statusFor(err), "detail", page)
}
