package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mw "github.com/TheRealJensJK/Studyfront-backend/pkg/apihelpers/middlewares"
	studyService "github.com/TheRealJensJK/Studyfront-backend/pkg/study"
	"github.com/TheRealJensJK/Studyfront-backend/pkg/study/exporter"
)

func (h *HttpEndpoints) AddResponsesAPI(rg *gin.RouterGroup) {
	responses := rg.Group("/v1/responses")
	{
		// participant facing routes, no auth
		responses.POST("/submit", mw.RequirePayload(), h.submitResponsesHandl)
		responses.POST("/check-participation", mw.RequirePayload(), h.checkParticipationHandl)

		// owner facing routes
		authed := responses.Group("")
		authed.Use(mw.GetAndValidateResearcherUserJWT(h.tokenSignKey))
		{
			authed.GET("/study/:studyID", h.getStudyResponsesHandl)
			authed.GET("/download/:studyID", h.downloadStudyResponsesHandl)
		}
	}
}

func (h *HttpEndpoints) submitResponsesHandl(c *gin.Context) {
	var req studyService.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// a completion marker from an earlier submission counts as participation
	marker, err := c.Cookie(studyService.CompletionMarkerCookieName(req.StudyID))
	if err != nil {
		marker = ""
	}

	record, err := studyService.SubmitResponse(req, marker, time.Now())
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	c.SetCookie(
		studyService.CompletionMarkerCookieName(req.StudyID),
		record.CompletionToken,
		studyService.COMPLETION_MARKER_MAX_AGE,
		"/",
		"",
		false,
		true,
	)

	slog.Info("responses submitted", slog.String("studyID", req.StudyID), slog.String("responseID", record.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"message": "responses submitted successfully"})
}

func (h *HttpEndpoints) handleSubmissionError(c *gin.Context, err error) {
	var vErr *studyService.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, studyService.ErrStudyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "study not found"})
	case errors.Is(err, studyService.ErrAlreadyParticipated):
		c.JSON(http.StatusConflict, gin.H{"error": "you have already participated in this study"})
	default:
		slog.Error("failed to submit responses", slog.String("error", err.Error()))
		if h.isDebugMode {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit responses"})
	}
}

type CheckParticipationReq struct {
	StudyID   string `json:"studyId"`
	VisitorID string `json:"visitorId"`
}

func (h *HttpEndpoints) checkParticipationHandl(c *gin.Context) {
	var req CheckParticipationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.VisitorID = strings.TrimSpace(req.VisitorID)
	if req.StudyID == "" || req.VisitorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studyId and visitorId are required"})
		return
	}

	studyID, err := primitive.ObjectIDFromHex(req.StudyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study ID format"})
		return
	}

	marker, err := c.Cookie(studyService.CompletionMarkerCookieName(req.StudyID))
	if err != nil {
		marker = ""
	}

	hasParticipated, err := studyService.HasParticipated(studyID, req.VisitorID, marker)
	if err != nil {
		slog.Error("failed to check participation", slog.String("studyID", req.StudyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check participation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasParticipated": hasParticipated})
}

func (h *HttpEndpoints) getStudyResponsesHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	responses, err := h.studyDBConn.GetResponsesByStudy(study.ID)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *HttpEndpoints) downloadStudyResponsesHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	responses, err := h.studyDBConn.GetResponsesByStudy(study.ID)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch responses"})
		return
	}

	payload := exporter.BuildExport(study, responses, time.Now().UTC())

	c.Header("Content-Disposition", "attachment; filename=study_"+study.ID.Hex()+"_responses.json")
	c.JSON(http.StatusOK, payload)
}
