package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runDocument is the BSON form of a run.
type runDocument struct {
	ID               string          `bson:"_id"`
	AccountID        string          `bson:"accountId"`
	MazeName         string          `bson:"mazeName"`
	MazeFingerprint  string          `bson:"mazeFingerprint"`
	Width            int             `bson:"width"`
	Height           int             `bson:"height"`
	Start            maze.Position   `bson:"start"`
	Goal             maze.Position   `bson:"goal"`
	Algorithm        string          `bson:"algorithm"`
	Exploration      []runner.Step   `bson:"exploration,omitempty"`
	ExplorationSteps int             `bson:"explorationSteps"`
	Path             []maze.Position `bson:"path"`
	PathLength       int             `bson:"pathLength"`
	PathFound        bool            `bson:"pathFound"`
	Score            float64         `bson:"score"`
	CreatedAt        time.Time       `bson:"createdAt"`
}

// MongoRunRepo stores runs in a MongoDB collection.
type MongoRunRepo struct {
	collection *mongo.Collection
}

var _ i.RunRepo = &MongoRunRepo{}

// NewMongoRunRepo creates a run repository on dbName.collectionName.
func NewMongoRunRepo(client *mongo.Client, dbName, collectionName string) *MongoRunRepo {
	return &MongoRunRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts the run, replacing any run with the same ID.
func (r *MongoRunRepo) Save(ctx context.Context, run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toRunDocument(run)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ByID retrieves a run with its exploration log.
func (r *MongoRunRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc runDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrRunNotFound
		}
		return nil, fmt.Errorf("loading run: %w", err)
	}
	return fromRunDocument(doc)
}

// Recent lists the newest runs first.
func (r *MongoRunRepo) Recent(ctx context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if accountID != uuid.Nil {
		filter["accountId"] = accountID.String()
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"exploration": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []runDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	runs := make([]*dmn.Run, 0, len(docs))
	for _, doc := range docs {
		run, err := fromRunDocument(doc)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func toRunDocument(run *dmn.Run) runDocument {
	return runDocument{
		ID:               run.ID.String(),
		AccountID:        run.AccountID.String(),
		MazeName:         run.MazeName,
		MazeFingerprint:  run.MazeFingerprint,
		Width:            run.Width,
		Height:           run.Height,
		Start:            run.Start,
		Goal:             run.Goal,
		Algorithm:        run.Algorithm,
		Exploration:      run.Exploration,
		ExplorationSteps: run.ExplorationSteps,
		Path:             run.Path,
		PathLength:       run.PathLength,
		PathFound:        run.PathFound,
		Score:            run.Score,
		CreatedAt:        run.CreatedAt,
	}
}

func fromRunDocument(doc runDocument) (*dmn.Run, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("loading run: bad id %q: %w", doc.ID, err)
	}
	accountID, err := uuid.Parse(doc.AccountID)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: bad account id %q: %w", doc.ID, doc.AccountID, err)
	}

	return &dmn.Run{
		ID:               id,
		AccountID:        accountID,
		MazeName:         doc.MazeName,
		MazeFingerprint:  doc.MazeFingerprint,
		Width:            doc.Width,
		Height:           doc.Height,
		Start:            doc.Start,
		Goal:             doc.Goal,
		Algorithm:        doc.Algorithm,
		Exploration:      doc.Exploration,
		ExplorationSteps: doc.ExplorationSteps,
		Path:             doc.Path,
		PathLength:       doc.PathLength,
		PathFound:        doc.PathFound,
		Score:            doc.Score,
		CreatedAt:        doc.CreatedAt,
	}, nil
}
