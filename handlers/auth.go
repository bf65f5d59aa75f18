package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/users"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req users.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "You need to provide a valid 'user' object")
		return
	}

	result, err := h.Users.Signup(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	result, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
