package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

const runSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	maze_name TEXT NOT NULL,
	maze_fingerprint TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	start_x INTEGER NOT NULL,
	start_y INTEGER NOT NULL,
	goal_x INTEGER NOT NULL,
	goal_y INTEGER NOT NULL,
	algorithm TEXT NOT NULL,
	exploration TEXT NOT NULL,
	exploration_steps INTEGER NOT NULL,
	path TEXT NOT NULL,
	path_length INTEGER NOT NULL,
	path_found INTEGER NOT NULL,
	score REAL NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_account_created ON runs(account_id, created_at);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)
`

// SQLiteRunRepo keeps run history in a local SQLite file.
type SQLiteRunRepo struct {
	db *sql.DB
}

var _ i.RunRepo = &SQLiteRunRepo{}

// NewSQLiteRunRepo opens (creating if needed) the database at path.
func NewSQLiteRunRepo(path string) (*SQLiteRunRepo, error) {
	db, err := openSQLite(path, runSchema)
	if err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}
	return &SQLiteRunRepo{db: db}, nil
}

// Close releases the database.
func (r *SQLiteRunRepo) Close() error {
	return r.db.Close()
}

// Save inserts the run, replacing any run with the same ID.
func (r *SQLiteRunRepo) Save(ctx context.Context, run *dmn.Run) error {
	exploration, err := json.Marshal(nonNilSteps(run.Exploration))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	path, err := json.Marshal(nonNilPath(run.Path))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (
			id, account_id, maze_name, maze_fingerprint, width, height,
			start_x, start_y, goal_x, goal_y, algorithm,
			exploration, exploration_steps, path, path_length, path_found,
			score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.AccountID.String(), run.MazeName, run.MazeFingerprint, run.Width, run.Height,
		run.Start.X, run.Start.Y, run.Goal.X, run.Goal.Y, run.Algorithm,
		string(exploration), run.ExplorationSteps, string(path), run.PathLength, run.PathFound,
		run.Score, run.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ByID retrieves a run with its exploration log.
func (r *SQLiteRunRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, maze_name, maze_fingerprint, width, height,
			start_x, start_y, goal_x, goal_y, algorithm,
			exploration, exploration_steps, path, path_length, path_found,
			score, created_at
		FROM runs WHERE id = ?`, id.String())

	run, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dmn.ErrRunNotFound
	}
	return run, err
}

// Recent lists the newest runs first, without their exploration logs.
func (r *SQLiteRunRepo) Recent(ctx context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error) {
	query := `
		SELECT id, account_id, maze_name, maze_fingerprint, width, height,
			start_x, start_y, goal_x, goal_y, algorithm,
			'[]', exploration_steps, path, path_length, path_found,
			score, created_at
		FROM runs`
	args := []any{}
	if accountID != uuid.Nil {
		query += " WHERE account_id = ?"
		args = append(args, accountID.String())
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*dmn.Run
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner, withExploration bool) (*dmn.Run, error) {
	var (
		rawID, rawAccountID  string
		exploration, rawPath string
		createdAt            int64
		run                  dmn.Run
	)

	err := s.Scan(
		&rawID, &rawAccountID, &run.MazeName, &run.MazeFingerprint, &run.Width, &run.Height,
		&run.Start.X, &run.Start.Y, &run.Goal.X, &run.Goal.Y, &run.Algorithm,
		&exploration, &run.ExplorationSteps, &rawPath, &run.PathLength, &run.PathFound,
		&run.Score, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("loading run: %w", err)
	}

	if run.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("loading run: bad id %q: %w", rawID, err)
	}
	if run.AccountID, err = uuid.Parse(rawAccountID); err != nil {
		return nil, fmt.Errorf("loading run %s: bad account id %q: %w", rawID, rawAccountID, err)
	}
	if err := json.Unmarshal([]byte(rawPath), &run.Path); err != nil {
		return nil, fmt.Errorf("loading run %s: path: %w", rawID, err)
	}
	if withExploration {
		if err := json.Unmarshal([]byte(exploration), &run.Exploration); err != nil {
			return nil, fmt.Errorf("loading run %s: exploration: %w", rawID, err)
		}
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()

	return &run, nil
}

func nonNilSteps(steps []runner.Step) []runner.Step {
	if steps == nil {
		return []runner.Step{}
	}
	return steps
}

func nonNilPath(path []maze.Position) []maze.Position {
	if path == nil {
		return []maze.Position{}
	}
	return path
}
