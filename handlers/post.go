package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/models"
	"github.com/Andryushik/MyDiary/posts"
	"github.com/Andryushik/MyDiary/store"
)

func (h *Handler) CreatePost(c *gin.Context) {
	var req posts.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "You need to provide a valid 'post' object")
		return
	}

	post, err := h.Posts.Create(c.Request.Context(), caller(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, post)
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.Posts.Get(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var update models.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "You need to provide a valid update object")
		return
	}

	post, err := h.Posts.Update(c.Request.Context(), caller(c), c.Param("id"), &update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.Posts.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "The post has been deleted", nil)
}

func (h *Handler) LikePost(c *gin.Context) {
	result, err := h.Posts.ToggleLike(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "The post has been "+result.State, result.Likes)
}

func (h *Handler) ReportPost(c *gin.Context) {
	post, err := h.Posts.Report(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, post)
}

// GetTimeline serves a single user's own post list, scoped by the privacy
// tab and an optional calendar-day filter.
func (h *Handler) GetTimeline(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}

	timeline, err := h.Feed.Timeline(c.Request.Context(), caller(c), c.Param("id"),
		c.Query("privacy"), c.Query("date"), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, timeline)
}

// GetFeed serves the aggregated feed. sort=likes selects the popularity
// ordering; anything else is chronological.
func (h *Handler) GetFeed(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}

	order := store.OrderByCreated
	if c.Query("sort") == "likes" {
		order = store.OrderByLikes
	}

	feedPosts, err := h.Feed.Feed(c.Request.Context(), caller(c), c.Param("id"),
		order, c.Query("date"), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, feedPosts)
}

func (h *Handler) GetReportedPosts(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}

	reported, err := h.Feed.Reported(c.Request.Context(), caller(c), c.Param("id"), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, reported)
}

func (h *Handler) GetBannedPosts(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}

	banned, err := h.Feed.Banned(c.Request.Context(), caller(c), c.Param("id"), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, banned)
}

// UploadPostImage accepts a multipart file and returns the durable URL to
// attach to a post.
func (h *Handler) UploadPostImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "You need to provide a 'file' to upload")
		return
	}

	blob, err := file.Open()
	if err != nil {
		badRequest(c, "unable to read the uploaded file")
		return
	}
	defer blob.Close()

	url, err := h.Posts.UploadImage(c.Request.Context(), caller(c), file.Filename, blob)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, url)
}
