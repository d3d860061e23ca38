package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/poolsim/internal/game"
)

// GetTable returns a freshly racked table and the engine constants.
func GetTable(eng *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := eng.Rack()
		if c.Query("empty") == "true" {
			t = eng.NewTable()
		}
		c.JSON(http.StatusOK, gin.H{
			"table":     t.State(),
			"constants": eng.Constants(),
			"display":   t.String(),
		})
	}
}

// RenderTable draws the posted table as SVG.
func RenderTable(eng *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req game.TableState
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table: " + err.Error()})
			return
		}
		t, err := eng.TableFromState(req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(eng.SVG(t)))
	}
}

// RunSegment advances the posted table to its next event.
func RunSegment(eng *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req game.TableState
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table: " + err.Error()})
			return
		}
		t, err := eng.TableFromState(req)
		if err != nil {
			abortWithError(c, err)
			return
		}

		next, ev := eng.Segment(t)
		if next == nil {
			c.JSON(http.StatusOK, gin.H{"event": ev})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"event": ev,
			"table": next.State(),
		})
	}
}
