// Package handlers translates HTTP requests into service calls and renders
// every outcome through the uniform {success, result?, msg?} envelope.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/feed"
	"github.com/Andryushik/MyDiary/middleware"
	"github.com/Andryushik/MyDiary/posts"
	"github.com/Andryushik/MyDiary/users"
)

// Handler bundles the services the HTTP layer dispatches to.
type Handler struct {
	Users *users.Service
	Posts *posts.Service
	Feed  *feed.Service
}

func New(usersSvc *users.Service, postsSvc *posts.Service, feedSvc *feed.Service) *Handler {
	return &Handler{Users: usersSvc, Posts: postsSvc, Feed: feedSvc}
}

func caller(c *gin.Context) string {
	return c.GetString(middleware.CallerKey)
}

func respondOK(c *gin.Context, status int, result interface{}) {
	c.JSON(status, gin.H{"success": true, "result": result})
}

func respondMsg(c *gin.Context, status int, msg string, result interface{}) {
	body := gin.H{"success": true, "msg": msg}
	if result != nil {
		body["result"] = result
	}
	c.JSON(status, body)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindExternalResource:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondErr logs the failure with its operation and identifiers, then
// renders the envelope. Internal causes never reach the client.
func respondErr(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		log.Printf("[%s] caller=%s target=%s: %v", ae.Op, ae.Caller, ae.Target, err)
	} else {
		log.Printf("[handlers] unexpected error: %v", err)
	}

	body := gin.H{"success": false}
	if fields := apperr.ValidationFields(err); len(fields) > 0 {
		body["msg"] = fields
	} else {
		body["msg"] = apperr.Message(err)
	}
	c.JSON(statusFor(apperr.KindOf(err)), body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": msg})
}

// pageParams reads the 1-based page and the page size, defaulting to the
// first page of ten.
func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		badRequest(c, "page must be an integer")
		return 0, 0, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		badRequest(c, "limit must be an integer")
		return 0, 0, false
	}
	return page, limit, true
}
