package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	jwthandling "github.com/TheRealJensJK/Studyfront-backend/pkg/jwt-handling"
	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

func getValidatedToken(c *gin.Context) *jwthandling.ResearcherUserClaims {
	return c.MustGet("validatedToken").(*jwthandling.ResearcherUserClaims)
}

// fetchOwnedStudy resolves the studyID path param and enforces that the
// authenticated user owns the study. Writes the error response itself when
// the lookup or the ownership check fails.
func (h *HttpEndpoints) fetchOwnedStudy(c *gin.Context) (studyTypes.Study, bool) {
	token := getValidatedToken(c)

	studyID, err := primitive.ObjectIDFromHex(c.Param("studyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study ID format"})
		return studyTypes.Study{}, false
	}

	study, err := h.studyDBConn.GetStudyByID(studyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "study not found"})
			return studyTypes.Study{}, false
		}
		slog.Error("failed to fetch study", slog.String("studyID", studyID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch study"})
		return studyTypes.Study{}, false
	}

	if study.OwnerID.Hex() != token.Subject {
		slog.Warn("user tried to access study they do not own",
			slog.String("userID", token.Subject),
			slog.String("studyID", studyID.Hex()))
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this study"})
		return studyTypes.Study{}, false
	}

	return study, true
}
