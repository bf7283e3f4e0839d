package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	studyDB "github.com/TheRealJensJK/Studyfront-backend/pkg/db/study"
	userDB "github.com/TheRealJensJK/Studyfront-backend/pkg/db/user"
)

type HttpEndpoints struct {
	tokenSignKey   string
	tokenExpiresIn time.Duration
	studyDBConn    *studyDB.StudyDBService
	userDBConn     *userDB.UserDBService
	filestorePath  string
	isDebugMode    bool
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	studyDBConn *studyDB.StudyDBService,
	userDBConn *userDB.UserDBService,
	filestorePath string,
	isDebugMode bool,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:   tokenSignKey,
		tokenExpiresIn: tokenExpiresIn,
		studyDBConn:    studyDBConn,
		userDBConn:     userDBConn,
		filestorePath:  filestorePath,
		isDebugMode:    isDebugMode,
	}
}

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
