package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/mediguard/internal/pipeline"
)

// drugCheckRequest accepts form or JSON bodies
type drugCheckRequest struct {
	Drug      string `form:"drug" json:"drug"`
	Condition string `form:"condition" json:"condition"`
}

// checkProfileImage runs the profile image pipeline on the uploaded file
func (s *Server) checkProfileImage(c *gin.Context) {
	image, errMsg := s.readImage(c)
	if errMsg != "" {
		c.IndentedJSON(http.StatusOK, pipeline.ProfileResult{Error: errMsg})
		return
	}
	result := s.pipeline.CheckProfileImage(c.Request.Context(), image)
	c.IndentedJSON(http.StatusOK, result)
}

// checkFoodImage runs the food image pipeline on the uploaded file
func (s *Server) checkFoodImage(c *gin.Context) {
	image, errMsg := s.readImage(c)
	if errMsg != "" {
		c.IndentedJSON(http.StatusOK, pipeline.FoodResult{Error: errMsg})
		return
	}
	condition := c.PostForm("condition")
	result := s.pipeline.CheckFoodImage(c.Request.Context(), image, condition)
	c.IndentedJSON(http.StatusOK, result)
}

// checkDrug runs the drug interaction pipeline
func (s *Server) checkDrug(c *gin.Context) {
	var req drugCheckRequest
	// Binding failure leaves the fields empty; the pipeline reports
	// the missing input as part of its renderable result
	_ = c.ShouldBind(&req)

	result := s.pipeline.CheckDrugInteraction(c.Request.Context(), req.Drug, req.Condition)
	c.IndentedJSON(http.StatusOK, result)
}

// readImage extracts the uploaded image bytes. A missing upload
// returns nil bytes and no message: the pipeline reports it as its
// own input error. Oversized and unreadable uploads get a message of
// their own, so the user is not told "no image uploaded" for a file
// they did upload.
func (s *Server) readImage(c *gin.Context) ([]byte, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, ""
	}
	if fileHeader.Size > maxImageBytes {
		return nil, fmt.Sprintf("image too large: %d bytes (limit %d MiB)", fileHeader.Size, maxImageBytes>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Warn("open uploaded image failed", "error", err)
		return nil, "could not read uploaded image"
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		s.logger.Warn("read uploaded image failed", "error", err)
		return nil, "could not read uploaded image"
	}
	return image, ""
}
