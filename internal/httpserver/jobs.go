package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listJobsHandler(jobs jobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		list, err := jobs.ListOpen(c.Request.Context(), region.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": list, "total": len(list)})
	}
}

func listMyJobsHandler(jobs jobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		u := userFrom(c)
		list, err := jobs.ListMine(c.Request.Context(), region.ID, u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": list, "total": len(list)})
	}
}

func claimJobHandler(jobs jobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		u := userFrom(c)
		job, err := jobs.Claim(c.Request.Context(), region.ID, c.Param("jobId"), u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

func unclaimJobHandler(jobs jobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		u := userFrom(c)
		job, err := jobs.Unclaim(c.Request.Context(), region.ID, c.Param("jobId"), u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
	}
}
