package apihandlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
	"github.com/TheRealJensJK/Studyfront-backend/pkg/utils"
)

const MAX_STUDY_FILE_SIZE = 20 << 20 // 20 MB

var allowedStudyFileTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

func (h *HttpEndpoints) uploadStudyFileHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	if fileHeader.Size > MAX_STUDY_FILE_SIZE {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	contentType, err := utils.DetectAndValidateFileType(fileHeader, allowedStudyFileTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileID := uuid.NewString()
	storedName := fileID + utils.FileExtensionForContentType(contentType)

	targetDir := filepath.Join(h.filestorePath, study.ID.Hex())
	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		slog.Error("failed to create filestore directory", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	targetPath := filepath.Join(targetDir, storedName)
	if err := c.SaveUploadedFile(fileHeader, targetPath); err != nil {
		slog.Error("failed to save uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	fileRef := studyTypes.FileRef{
		ID:           fileID,
		Name:         storedName,
		OriginalName: fileHeader.Filename,
		Path:         filepath.Join(study.ID.Hex(), storedName),
		ContentType:  contentType,
		Size:         fileHeader.Size,
		UploadedAt:   time.Now(),
	}

	study.Files = append(study.Files, fileRef)
	study.UpdatedAt = time.Now()
	if err := h.studyDBConn.ReplaceStudy(study); err != nil {
		// file on disk without a reference is just noise, clean it up
		_ = os.Remove(targetPath)
		slog.Error("failed to attach file to study", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	slog.Info("file uploaded", slog.String("studyID", study.ID.Hex()), slog.String("fileID", fileID))
	c.JSON(http.StatusCreated, fileRef)
}

func (h *HttpEndpoints) deleteStudyFileHandl(c *gin.Context) {
	study, ok := h.fetchOwnedStudy(c)
	if !ok {
		return
	}

	fileID := c.Param("fileID")

	var removed *studyTypes.FileRef
	remaining := make([]studyTypes.FileRef, 0, len(study.Files))
	for _, file := range study.Files {
		if file.ID == fileID {
			f := file
			removed = &f
			continue
		}
		remaining = append(remaining, file)
	}
	if removed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	study.Files = remaining
	study.UpdatedAt = time.Now()
	if err := h.studyDBConn.ReplaceStudy(study); err != nil {
		slog.Error("failed to detach file from study", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	if err := os.Remove(filepath.Join(h.filestorePath, removed.Path)); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to remove file from filestore", slog.String("path", removed.Path), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// removeStudyFiles drops the whole filestore directory of a study, used on
// study deletion. Failures are logged only, the DB side is already gone.
func (h *HttpEndpoints) removeStudyFiles(study studyTypes.Study) {
	if len(study.Files) == 0 {
		return
	}
	dir := filepath.Join(h.filestorePath, study.ID.Hex())
	if err := os.RemoveAll(dir); err != nil {
		slog.Error("failed to remove study files", slog.String("studyID", study.ID.Hex()), slog.String("error", err.Error()))
	}
}
