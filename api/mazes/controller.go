// Package mazeapi generates mazes and serves their leaderboards over HTTP.
package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

// Mazes is the part of the runner service the controller needs.
type Mazes interface {
	Generate(width, height int, seed int64) (*maze.Maze, error)
	Leaderboard(ctx context.Context, board string, n int) ([]i.LeaderboardEntry, int64, error)
}

// GenerateRequest asks for a random perfect maze. A missing seed is picked from the clock.
type GenerateRequest struct {
	Width  int    `json:"width" binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
	Seed   *int64 `json:"seed"`
}

// GenerateResponse carries the generated maze as ASCII text.
type GenerateResponse struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
	Fingerprint string `json:"fingerprint"`
	Maze        string `json:"maze"`
}

// LeaderboardResponse is one page of a maze's leaderboard.
type LeaderboardResponse struct {
	Maze    string               `json:"maze"`
	Total   int64                `json:"total"`
	Entries []i.LeaderboardEntry `json:"entries"`
}

// MazeController handles maze generation and leaderboards.
type MazeController struct {
	mazes Mazes
	now   func() time.Time
}

// NewMazeController creates a MazeController.
func NewMazeController(m Mazes) *MazeController {
	return &MazeController{mazes: m, now: time.Now}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/mazes/generate", mc.generate)
	route.GET("/leaderboard/:maze", mc.leaderboard)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := mc.now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	m, err := mc.mazes.Generate(request.Width, request.Height, seed)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, maze.ErrInvalidDimensions) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, GenerateResponse{
		Width:       m.Width(),
		Height:      m.Height(),
		Seed:        seed,
		Fingerprint: m.Fingerprint(),
		Maze:        m.String(),
	})
}

func (mc *MazeController) leaderboard(ctx *gin.Context) {
	board := ctx.Params.ByName("maze")

	n := 0
	if raw := ctx.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a non-negative integer"})
			return
		}
		n = v
	}

	entries, total, err := mc.mazes.Leaderboard(ctx.Request.Context(), board, n)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrLeaderboardDisabled) {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if entries == nil {
		entries = []i.LeaderboardEntry{}
	}
	ctx.JSON(http.StatusOK, LeaderboardResponse{Maze: board, Total: total, Entries: entries})
}
