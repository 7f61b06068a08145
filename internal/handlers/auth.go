package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/auth"
	"github.com/statushub-dev/statushub/internal/config"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"github.com/statushub-dev/statushub/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	cfg    *config.Config
}

func NewAuthHandler(conn *gorm.DB, tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: conn, tokens: tokens, cfg: cfg}
}

type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	OrganizationName string `json:"organization_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := h.db.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	roleName := "user"
	if h.cfg.AdminEmailDomain != "" && strings.HasSuffix(req.Email, "@"+h.cfg.AdminEmailDomain) {
		roleName = types.RoleAdmin
	}

	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var organizationID *uint

		if req.OrganizationName != "" {
			var organization models.Organization

			err := tx.Where("name = ?", req.OrganizationName).First(&organization).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				organization = models.Organization{Name: req.OrganizationName}
				if err := tx.Create(&organization).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			organizationID = &organization.ID
		}

		var role models.Role

		err := tx.Where("name = ?", roleName).First(&role).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.Role{Name: roleName, Description: roleName + " role"}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		user = models.User{
			Email:          req.Email,
			PasswordHash:   string(passwordHash),
			Active:         true,
			OrganizationID: organizationID,
			Roles:          []models.Role{role},
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		log.Printf("Failed to register user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	log.Printf("New user registered: %s with role: %s", user.Email, roleName)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": UserResponse{
			Email: user.Email,
			Roles: []string{roleName},
		},
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	var user models.User

	err := h.db.Preload("Roles").Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": UserResponse{
			Email: user.Email,
			Roles: user.RoleNames(),
		},
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			Email: actor.Email,
			Roles: actor.Roles,
		},
	})
}
