package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/models"
)

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), caller(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "You need to provide a valid profile object")
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), caller(c), &update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *Handler) FollowUser(c *gin.Context) {
	if err := h.Users.Follow(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "You are now following this user", nil)
}

func (h *Handler) UnfollowUser(c *gin.Context) {
	if err := h.Users.Unfollow(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "You are no longer following this user", nil)
}

func (h *Handler) UploadProfilePicture(c *gin.Context) {
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

	url, err := h.Users.UploadProfilePicture(c.Request.Context(), caller(c), file.Filename, blob)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, url)
}
