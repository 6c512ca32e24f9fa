package interfaces

import "context"

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// DBClient defines the interface for a generic database client.
// It abstracts the operations the run ledger needs across different
// database types (e.g., MongoDB, SQL). The ledger is append-only, so the
// surface is deliberately small.
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	// Returns an error if the disconnection fails.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection/table.
	// The collection/table name is provided by 'collectionName'.
	// Returns the ID of the inserted document (e.g., MongoDB ObjectID, SQL primary key) and an error.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error
}
