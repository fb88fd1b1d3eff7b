package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/pkg/metrics"
	"github.com/North-Head-Digital/nhd-website/pkg/submission"
)

type formSubmission struct {
	FormName string `form:"form-name" binding:"required"`
}

// handleFormSubmission stands in for the hosting platform's form capture so
// the form-encoded fallback can be exercised locally.
func (s *DevServer) handleFormSubmission(c *gin.Context) {
	var req formSubmission
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "form-name is required"})
		return
	}

	fields := logrus.Fields{"form": req.FormName}
	for key, values := range c.Request.PostForm {
		if key == submission.FormField || len(values) == 0 {
			continue
		}
		fields["field_"+key] = values[0]
	}

	metrics.FormCapturesTotal.WithLabelValues(req.FormName).Inc()
	s.logger.WithFields(fields).Info("Form submission captured")

	c.JSON(http.StatusOK, gin.H{
		"status": "received",
		"form":   req.FormName,
	})
}
