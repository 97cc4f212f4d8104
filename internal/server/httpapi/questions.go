package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/stackquery/internal/questions"
	"github.com/gin-gonic/gin"
)

type questionsResponse struct {
	Total     int                  `json:"total"`
	Limit     int                  `json:"limit"`
	Questions []*questions.Summary `json:"questions"`
}

// listQuestions serves GET /api/questions?page=N, newest first.
func (s *Server) listQuestions(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	res, err := s.questions.Browse(c.Request.Context(), page)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "list questions failed", "page", page, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load questions. Please try again."})
		return
	}

	c.JSON(http.StatusOK, questionsResponse{Total: res.Total, Limit: questions.PageSize, Questions: res.Questions})
}
