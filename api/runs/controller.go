package runapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/beka-birhanu/maze-runner/api/identity"
	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Runner is the part of the runner service the controller needs.
type Runner interface {
	Run(ctx context.Context, req service.RunRequest) (*dmn.Run, error)
	RunByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
	RecentRuns(ctx context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error)
	Compare(ctx context.Context, m *maze.Maze, start, goal *maze.Position, algos ...pathfinding.Algorithm) ([]pathfinding.Result, error)
}

// RunController handles run submission and history.
type RunController struct {
	runner Runner
}

// NewRunController creates a RunController.
func NewRunController(r Runner) *RunController {
	return &RunController{runner: r}
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("", rc.run)
		runs.GET("", rc.recent)
		runs.GET("/:ID", rc.byID)
	}
	route.POST("/paths/compare", rc.compare)
}

// run explores a submitted maze on behalf of the caller.
func (rc *RunController) run(ctx *gin.Context) {
	claims, ok := identity.ClaimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := maze.Parse(strings.NewReader(request.Maze))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	algo, err := pathfinding.ParseAlgorithm(request.Algorithm)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := rc.runner.Run(ctx.Request.Context(), service.RunRequest{
		AccountID: claims.AccountID,
		Username:  claims.Username,
		MazeName:  request.MazeName,
		Maze:      m,
		Start:     request.Start,
		Goal:      request.Goal,
		Algorithm: algo,
	})
	if err != nil {
		body := gin.H{"error": err.Error()}
		if run != nil && statusOf(err) == http.StatusUnprocessableEntity {
			body["run"] = run
		}
		ctx.JSON(statusOf(err), body)
		return
	}

	ctx.JSON(http.StatusCreated, run)
}

// byID returns one of the caller's runs with its exploration log.
func (rc *RunController) byID(ctx *gin.Context) {
	claims, ok := identity.ClaimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := rc.runner.RunByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	if run.AccountID != claims.AccountID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": dmn.ErrRunNotFound.Error()})
		return
	}

	ctx.JSON(http.StatusOK, run)
}

// recent lists the caller's newest runs, or everyone's with ?all=true.
func (rc *RunController) recent(ctx *gin.Context) {
	claims, ok := identity.ClaimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = v
	}

	accountID := claims.AccountID
	if all, _ := strconv.ParseBool(ctx.Query("all")); all {
		accountID = uuid.Nil
	}

	runs, err := rc.runner.RecentRuns(ctx.Request.Context(), accountID, limit)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*dmn.Run{}
	}

	ctx.JSON(http.StatusOK, gin.H{"runs": runs})
}

// compare runs several algorithms on a submitted maze.
func (rc *RunController) compare(ctx *gin.Context) {
	var request CompareRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := maze.Parse(strings.NewReader(request.Maze))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	algos := make([]pathfinding.Algorithm, 0, len(request.Algorithms))
	for _, name := range request.Algorithms {
		algo, err := pathfinding.ParseAlgorithm(name)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		algos = append(algos, algo)
	}

	results, err := rc.runner.Compare(ctx.Request.Context(), m, request.Start, request.Goal, algos...)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, CompareResponse{Results: results})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, maze.ErrEmptyMaze),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, pathfinding.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, dmn.ErrRunNotFound),
		errors.Is(err, dmn.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, runner.ErrGoalUnreachable),
		errors.Is(err, runner.ErrTrapped),
		errors.Is(err, pathfinding.ErrNoPath):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
