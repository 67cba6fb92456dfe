package rest

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/metrics"
)

const (
	serviceName    = "tic-tac-toe-backend"
	serviceVersion = "1.0.0"
)

func (that *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (that *Server) players(c *gin.Context) {
	c.JSON(http.StatusOK, that.matchService.InitialPlayers())
}

func (that *Server) gameBoard(c *gin.Context) {
	c.JSON(http.StatusOK, entity.NewGameBoard())
}

func (that *Server) newMatch(c *gin.Context) {
	log := that.logger.With("method", "newMatch")

	match, err := that.matchService.NewMatch(c.Request.Context())
	if err != nil {
		log.Error("failed to create match", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create match"})
		return
	}

	metrics.MatchesCreatedTotal.Inc()
	log.Info("match created", "matchID", match.ID)

	c.JSON(http.StatusOK, match)
}

func (that *Server) getMatch(c *gin.Context) {
	log := that.logger.With("method", "getMatch")

	id := c.Param("id")

	match, err := that.matchService.GetMatch(c.Request.Context(), id)
	if errors.Is(err, apperror.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	if err != nil {
		log.Error("failed to get match", "matchID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get match"})
		return
	}

	c.JSON(http.StatusOK, match)
}

func (that *Server) deleteMatch(c *gin.Context) {
	log := that.logger.With("method", "deleteMatch")

	id := c.Param("id")

	err := that.matchService.DeleteMatch(c.Request.Context(), id)
	if errors.Is(err, apperror.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	if err != nil {
		log.Error("failed to delete match", "matchID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete match"})
		return
	}

	log.Info("match deleted", "matchID", id)

	c.Status(http.StatusNoContent)
}

// noRoute serves the static client when one is configured; API paths always get a JSON 404.
func (that *Server) noRoute(c *gin.Context) {
	path := c.Request.URL.Path

	if that.options.StaticDir == "" || path == "/api" || strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		return
	}

	name := filepath.Join(that.options.StaticDir, filepath.FromSlash(filepath.Clean("/"+path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		c.File(name)
		return
	}

	c.File(filepath.Join(that.options.StaticDir, "index.html"))
}
