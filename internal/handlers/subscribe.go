package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/statushub-dev/statushub/internal/models"
	"gorm.io/gorm"
)

type SubscribeHandler struct {
	db *gorm.DB
}

func NewSubscribeHandler(conn *gorm.DB) *SubscribeHandler {
	return &SubscribeHandler{db: conn}
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe registers an email for status notifications. Subscribing twice is
// not an error: the second call reports the existing subscription and writes
// nothing.
func (h *SubscribeHandler) Subscribe(ctx *gin.Context) {
	var req SubscribeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var existing models.EmailSubscriber

	err := h.db.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"message":      "You are already subscribed to status updates",
			"isSubscribed": true,
		})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking subscriber: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	subscriber := models.EmailSubscriber{
		Email:             req.Email,
		IsVerified:        true,
		VerificationToken: uuid.NewString(),
	}

	if err := h.db.Create(&subscriber).Error; err != nil {
		log.Printf("Failed to create subscriber: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Successfully subscribed to status updates",
	})
}
