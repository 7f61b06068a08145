package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/apperr"
)

func respondError(ctx *gin.Context, err error) {
	code := apperr.HTTPStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}

	ctx.JSON(code, gin.H{"error": apperr.Message(err)})
}
