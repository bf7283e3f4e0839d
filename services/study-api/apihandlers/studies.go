package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/TheRealJensJK/Studyfront-backend/pkg/apihelpers/middlewares"
	studyService "github.com/TheRealJensJK/Studyfront-backend/pkg/study"
	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

func (h *HttpEndpoints) AddStudyManagementAPI(rg *gin.RouterGroup) {
	studies := rg.Group("/v1/studies")
	studies.Use(mw.GetAndValidateResearcherUserJWT(h.tokenSignKey))
	{
		studies.POST("", mw.RequirePayload(), h.createStudyHandl)
		studies.GET("", h.getAllStudiesHandl)
		studies.GET("/:studyID", h.getStudyHandl)
		studies.PUT("/:studyID", mw.RequirePayload(), h.updateStudyHandl)
		studies.DELETE("/:studyID", h.deleteStudyHandl)

		studies.POST("/:studyID/files", h.uploadStudyFileHandl)
		studies.DELETE("/:studyID/files/:fileID", h.deleteStudyFileHandl)
	}
}

func (h *HttpEndpoints) AddStudyTakeAPI(rg *gin.RouterGroup) {
	studyTake := rg.Group("/v1/study-take")
	{
		// public route used by participants, no auth
		studyTake.GET("/:studyID", h.getStudyForParticipantHandl)
	}
}

type StudyReq struct {
	Title              *string               `json:"title"`
	Description        *string               `json:"description"`
	Active             *bool                 `json:"active"`
	Completed          *bool                 `json:"completed"`
	TimedStudy         *bool                 `json:"timedStudy"`
	StartedAt          *time.Time            `json:"startedAt"`
	EndDate            *time.Time            `json:"endDate"`
	TermsAndConditions *string               `json:"termsAndConditions"`
	Questions          []studyTypes.Question `json:"questions"`
}

func (h *HttpEndpoints) createStudyHandl(c *gin.Context) {
	token := getValidatedToken(c)

	var req StudyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(token.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	questions, err := studyService.PrepareQuestions(req.Questions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	study := studyTypes.Study{
		Title:     strings.TrimSpace(*req.Title),
		OwnerID:   ownerID,
		Active:    true,
		Questions: questions,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyStudyReq(&study, req)

	study, err = h.studyDBConn.CreateStudy(study)
	if err != nil {
		slog.Error("failed to create study", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create study"})
		return
	}

	slog.Info("study created", slog.String("studyID", study.ID.Hex()), slog.String("userID", token.Subject))
	c.JSON(http.StatusCreated, study)
}

func (h *HttpEndpoints) getAllStudiesHandl(c *gin.Context) {
	token := getValidatedToken(c)

	ownerID, err := primitive.ObjectIDFromHex(token.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	studies, err := h.studyDBConn.GetStudiesByOwner(ownerID)
	if err != nil {
		slog.Error("failed to fetch studies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch studies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"studies": studies})
}

func (h *HttpEndpoints) getStudyHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, study)
}

func (h *HttpEndpoints) updateStudyHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	var req StudyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Questions != nil {
		questions, err := studyService.PrepareQuestions(req.Questions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		study.Questions = questions
	}
	applyStudyReq(&study, req)
	study.UpdatedAt = time.Now()

	if err := h.studyDBConn.ReplaceStudy(study); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "study not found"})
			return
		}
		slog.Error("failed to update study", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update study"})
		return
	}

	c.JSON(http.StatusOK, study)
}

func (h *HttpEndpoints) deleteStudyHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	if err := h.studyDBConn.DeleteStudy(study.ID); err != nil {
		slog.Error("failed to delete study", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete study"})
		return
	}

	// stored responses go with the study
	count, err := h.studyDBConn.DeleteResponsesByStudy(study.ID)
	if err != nil {
		slog.Error("failed to delete responses for study", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
	}

	h.removeStudyFiles(study)

	slog.Info("study deleted", slog.String("studyID", study.ID.Hex()), slog.Int64("deletedResponses", count))
	c.JSON(http.StatusOK, gin.H{"message": "study deleted"})
}

// participant facing view of an active study, without owner only fields
func (h *HttpEndpoints) getStudyForParticipantHandl(c *gin.Context) {
	studyID, err := primitive.ObjectIDFromHex(c.Param("studyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study ID format"})
		return
	}

	study, err := h.studyDBConn.GetStudyByID(studyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "this study does not exist"})
			return
		}
		slog.Error("failed to fetch study", slog.String("studyID", studyID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch study"})
		return
	}

	if !study.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "this study is not currently available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 study.ID.Hex(),
		"title":              study.Title,
		"description":        study.Description,
		"timedStudy":         study.TimedStudy,
		"endDate":            study.EndDate,
		"termsAndConditions": study.TermsAndConditions,
		"questions":          study.Questions,
		"files":              study.Files,
	})
}

func applyStudyReq(study *studyTypes.Study, req StudyReq) {
	if req.Title != nil {
		study.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		study.Description = *req.Description
	}
	if req.Active != nil {
		study.Active = *req.Active
	}
	if req.Completed != nil {
		study.Completed = *req.Completed
	}
	if req.TimedStudy != nil {
		study.TimedStudy = *req.TimedStudy
	}
	if req.StartedAt != nil {
		study.StartedAt = req.StartedAt
	}
	if req.EndDate != nil {
		study.EndDate = req.EndDate
	}
	if req.TermsAndConditions != nil {
		study.TermsAndConditions = *req.TermsAndConditions
	}
}
