package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/TheRealJensJK/Studyfront-backend/pkg/apihelpers"
	"github.com/TheRealJensJK/Studyfront-backend/services/study-api/apihandlers"
)

var conf StudyApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add handlers
	root := router.Group("/")
	apiModule := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.ResearcherUserJWTConfig.SignKey,
		conf.UserManagementConfig.ResearcherUserJWTConfig.ExpiresIn,
		studyDBService,
		userDBService,
		conf.FilestorePath,
		conf.GinConfig.DebugMode,
	)
	apiModule.AddAuthAPI(root)
	apiModule.AddStudyManagementAPI(root)
	apiModule.AddStudyTakeAPI(root)
	apiModule.AddResponsesAPI(root)

	root.GET("/", apihandlers.HealthCheckHandle)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "study-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Study API", slog.String("port", conf.GinConfig.Port))
	if conf.GinConfig.MTLS.Use {
		certificates := conf.GinConfig.MTLS.CertificatePaths
		tlsConfig, err := apihelpers.LoadTLSConfig(certificates)
		if err != nil {
			slog.Error("Error loading TLS config", slog.String("error", err.Error()))
			panic(err)
		}
		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}
		err = server.ListenAndServeTLS(certificates.ServerCertPath, certificates.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Study API", slog.String("error", err.Error()))
			return
		}
	} else {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Study API", slog.String("error", err.Error()))
			return
		}
	}
}
