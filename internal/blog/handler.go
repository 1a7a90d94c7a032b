package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PostsResponse struct {
	Posts []*Post `json:"posts"`
	Total int     `json:"total"`
}

type newPostRequest struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

type updatePostRequest struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

type postsRepo interface {
	AddPost(ctx context.Context, post *Post) error
	UpdatePost(ctx context.Context, id string, post Post) error
	DeletePost(ctx context.Context, id string) error
	All(ctx context.Context) ([]*Post, error)
	PostsCount(ctx context.Context) (int, error)
	GetPostsPage(ctx context.Context, page, size int) ([]*Post, error)
}

type Handler struct {
	repo postsRepo
}

func NewHandler(repo postsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/blog/new", handler.handleNewPost).Methods("POST", "OPTIONS").Name("new-blog")
	router.HandleFunc("/blog/update", handler.handleUpdatePost).Methods("POST", "OPTIONS").Name("update-blog")
	router.HandleFunc("/blog/delete/{id}", handler.handleDeletePost).Methods("DELETE", "OPTIONS").Name("delete-blog")
	router.HandleFunc("/blog/all", handler.handleAll).Methods("GET").Name("all-blogs")
	router.HandleFunc("/blog/page/{page}/size/{size}", handler.handleGetPage).Methods("GET").Name("blogs-page")
}

func (handler *Handler) handleNewPost(w http.ResponseWriter, r *http.Request) {
	var newPostReq newPostRequest
	if err := json.NewDecoder(r.Body).Decode(&newPostReq); err != nil {
		log.Errorf("new blog post, unmarshal json params: %s", err)
		http.Error(w, "add blog post failed", http.StatusBadRequest)
		return
	}

	if newPostReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if newPostReq.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	newPost := &Post{
		Title:     newPostReq.Title,
		Excerpt:   newPostReq.Excerpt,
		Content:   newPostReq.Content,
		Author:    newPostReq.Author,
		Category:  newPostReq.Category,
		Tags:      newPostReq.Tags,
		CreatedAt: time.Now(),
		Published: newPostReq.Published,
	}

	if err := handler.repo.AddPost(r.Context(), newPost); err != nil {
		log.Errorf("add new blog post failed: %s", err)
		http.Error(w, "add new blog post failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new blog post %s: [%s] added", newPost.ID.Hex(), newPost.Title)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%s", newPost.ID.Hex()),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var updatePostReq updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&updatePostReq); err != nil {
		log.Errorf("update blog post, unmarshal json params: %s", err)
		http.Error(w, "update blog post failed", http.StatusBadRequest)
		return
	}

	if updatePostReq.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if updatePostReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if updatePostReq.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.UpdatePost(r.Context(), updatePostReq.ID, Post{
		Title:     updatePostReq.Title,
		Excerpt:   updatePostReq.Excerpt,
		Content:   updatePostReq.Content,
		Author:    updatePostReq.Author,
		Category:  updatePostReq.Category,
		Tags:      updatePostReq.Tags,
		Published: updatePostReq.Published,
	})
	if errors.Is(err, ErrPostNotFound) {
		http.Error(w, "blog post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update blog post failed: %s", err)
		http.Error(w, "update blog post failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%s", updatePostReq.ID))
}

func (handler *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.DeletePost(r.Context(), id)
	if errors.Is(err, ErrPostNotFound) {
		http.Error(w, "blog post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete blog post %s: %s", id, err)
		http.Error(w, "error, blog post not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", id))
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	allPosts, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all blog posts error: %s", err)
		http.Error(w, "get all blog posts error", http.StatusInternalServerError)
		return
	}

	allPostsJson, err := json.Marshal(allPosts)
	if err != nil {
		log.Errorf("marshal all blog posts error: %s", err)
		http.Error(w, "marshal all blog posts error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, allPostsJson)
}

func (handler *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Errorf("handle get blog posts page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Errorf("handle get blog posts page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	log.Tracef("get blog posts - page %s size %s", pageStr, sizeStr)

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	posts, err := handler.repo.GetPostsPage(r.Context(), page, size)
	if err != nil {
		log.Errorf("get blog posts error: %s", err)
		http.Error(w, "failed to get blog posts", http.StatusInternalServerError)
		return
	}

	totalPostsCount, err := handler.repo.PostsCount(r.Context())
	if err != nil {
		log.Errorf("get blog posts error: %s", err)
		http.Error(w, "failed to get blog posts", http.StatusInternalServerError)
		return
	}

	postsResp := PostsResponse{
		Posts: posts,
		Total: totalPostsCount,
	}

	postsRespJson, err := json.Marshal(postsResp)
	if err != nil {
		log.Errorf("marshal blog posts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, postsRespJson, http.StatusOK)
}
