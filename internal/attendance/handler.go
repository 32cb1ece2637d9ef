package attendance

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"presence/internal/metrics"
)

// RegisterRoutes mounts the attendance API under /api.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	api := r.Group("/api")
	api.POST("/attendance", recordHandler(svc))
	api.GET("/attendance/recent", recentHandler(svc))
	api.GET("/health", healthHandler(svc))
}

// NoRoute answers unmatched paths with the standard envelope.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Endpoint not found"})
}

// Recovered answers a recovered handler panic without leaking detail.
func Recovered(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}

func recordHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)

		rec, err := svc.RecordAttendance(c.Request.Context(), body)
		if err != nil {
			metrics.RecordsRejected.Inc()
			c.JSON(httpStatus(err), gin.H{"success": false, "message": userMessage(err)})
			return
		}

		metrics.RecordsAccepted.Inc()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Attendance recorded successfully",
			"data": gin.H{
				"student_mac_address": rec.StudentMACAddress,
				"classroom_id":        rec.ClassroomID,
				"timestamp":           rec.EntryTimestamp.Format(TimeLayout),
			},
		})
	}
}

func recentHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := DefaultRecentLimit
		if v := c.Query("limit"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				limit = parsed
			}
		}

		recs, err := svc.RecentAttendance(c.Request.Context(), limit)
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"success": false, "message": userMessage(err)})
			return
		}

		data := make([]RecordDTO, 0, len(recs))
		for _, rec := range recs {
			data = append(data, rec.toDTO())
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Retrieved %d recent attendance records", len(data)),
			"data":    data,
		})
	}
}

func healthHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"message":         "Server is running",
			"database_status": svc.DatabaseStatus(c.Request.Context()),
			"timestamp":       time.Now().Format(TimeLayout),
		})
	}
}

// userMessage returns the classified message for service errors and a
// generic one for anything unexpected.
func userMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
