package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/stackquery/internal/votes"
	"github.com/gin-gonic/gin"
)

type votesResponse struct {
	Total int           `json:"total"`
	Limit int           `json:"limit"`
	Votes []*votes.Vote `json:"votes"`
}

// listVotes serves GET /api/users/:userId/votes?page=N&voteStatus=S.
func (s *Server) listVotes(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	status, err := votes.ParseStatus(c.Query("voteStatus"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.Param("userId")
	res, err := s.votes.List(c.Request.Context(), votes.Request{UserID: userID, Page: page, VoteStatus: status})
	if err != nil {
		s.logger.Warn(c.Request.Context(), "list votes failed", "user", userID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load votes. Please try again."})
		return
	}

	c.JSON(http.StatusOK, votesResponse{Total: res.Total, Limit: votes.PageSize, Votes: res.Votes})
}

// pageParam reads ?page=N, defaulting to 1. It writes the 400 itself.
func pageParam(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return 0, false
	}
	return n, true
}
