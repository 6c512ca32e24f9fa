package mongo

import (
	"context"
	"fmt"

	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/models"
	"github.com/haguru/shisui/internal/runledger/constants"

	"go.mongodb.org/mongo-driver/bson"

	mongoClient "github.com/haguru/shisui/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRunLedger implements RunLedger using the generic DBClient.
type MongoRunLedger struct {
	dbClient interfaces.DBClient
}

// NewMongoRunLedger creates a new MongoDB ledger instance.
// It requires a concrete mongo.MongoDBClient underneath, since index
// creation is MongoDB-specific.
func NewMongoRunLedger(dbClient interfaces.DBClient) (interfaces.RunLedger, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if _, ok := dbClient.(*mongoClient.MongoDBClient); !ok {
		return nil, fmt.Errorf("dbClient must be a MongoDB client")
	}
	return &MongoRunLedger{dbClient: dbClient}, nil
}

// Record appends one run entry to the ledger and returns its id. Summary
// counts are flattened so the sanitizer's field allowlist applies to them.
func (l *MongoRunLedger) Record(ctx context.Context, entry models.RunEntry) (string, error) {
	doc := map[string]interface{}{
		"job_id":          entry.JobID,
		"connection_id":   entry.ConnectionID,
		"connection_name": entry.ConnectionName,
		"prefix":          entry.Prefix,
		"record_count":    entry.RecordCount,
		"status":          entry.Status,
		"total":           entry.Summary.Total,
		"inserted":        entry.Summary.Inserted,
		"updated":         entry.Summary.Updated,
		"failed":          entry.Summary.Failed,
		"started_at":      entry.StartedAt,
		"finished_at":     entry.FinishedAt,
	}

	insertedID, err := l.dbClient.InsertOne(ctx, constants.RunsCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to record run in MongoDB: %w", err)
	}

	return fmt.Sprintf("%v", insertedID), nil
}

// EnsureIndices creates the job_id index for the runs collection.
func (l *MongoRunLedger) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.M{"job_id": 1},
		Options: options.Index().SetUnique(true),
	}
	// Index creation is not part of the generic DBClient, so reach for the
	// concrete client here.
	client, ok := l.dbClient.(*mongoClient.MongoDBClient)
	if !ok {
		return fmt.Errorf("dbClient must be a MongoDB client")
	}
	return client.EnsureSchema(ctx, constants.RunsCollection, indexModel)
}

// Close disconnects the MongoDB client.
func (l *MongoRunLedger) Close(ctx context.Context) error {
	return l.dbClient.Disconnect(ctx)
}
