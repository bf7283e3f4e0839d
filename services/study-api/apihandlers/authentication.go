package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/TheRealJensJK/Studyfront-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/TheRealJensJK/Studyfront-backend/pkg/jwt-handling"
	"github.com/TheRealJensJK/Studyfront-backend/pkg/user-management/pwhash"
	userTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/user-management/types"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/v1/auth")
	{
		auth.POST("/signup", mw.RequirePayload(), h.signupHandl)
		auth.POST("/login", mw.RequirePayload(), h.loginHandl)
	}
}

type SignupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) signupHandl(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must have at least 8 characters"})
		return
	}

	if _, err := h.userDBConn.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "account with this email already exists"})
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to look up user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	hashedPassword, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user, err := h.userDBConn.CreateUser(userTypes.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	token, err := jwthandling.GenerateNewResearcherUserToken(h.tokenExpiresIn, user.ID.Hex(), user.Email, user.Name, h.tokenSignKey)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	slog.Info("new user signed up", slog.String("userID", user.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *HttpEndpoints) loginHandl(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.userDBConn.GetUserByEmail(req.Email)
	if err != nil {
		// same response as wrong password to not leak which emails exist
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	match, err := pwhash.ComparePasswordWithHash(user.Password, req.Password)
	if err != nil || !match {
		slog.Warn("failed login attempt", slog.String("userID", user.ID.Hex()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := jwthandling.GenerateNewResearcherUserToken(h.tokenExpiresIn, user.ID.Hex(), user.Email, user.Name, h.tokenSignKey)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	if err := h.userDBConn.UpdateLastLogin(user.ID, time.Now()); err != nil {
		slog.Error("failed to update last login", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
