// Package store wraps the official Neo4j Go driver behind a single
// query-running capability, so handlers never touch sessions or transactions
// directly. Each Run call executes one Cypher statement as one transaction,
// which is what makes multi-part statements (e.g. cascade deletes) atomic.
package store

import (
	"context"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
)

// Row is a single result record, keyed by the column alias used in the
// RETURN clause.
type Row map[string]any

// Runner executes a parameterized Cypher statement and returns the resulting
// rows in order. It is the only capability handlers depend on.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]Row, error)
}

// Config holds the connection settings for the graph store, read once at
// process start.
type Config struct {
	URI      string
	User     string
	Password string
	Database string
}

// ConfigFromEnv builds a Config from the environment, falling back to the
// defaults of a local Neo4j instance.
func ConfigFromEnv() Config {
	return Config{
		URI:      getenv("NEO4J_URI", "bolt://localhost:7687"),
		User:     getenv("NEO4J_USER", "neo4j"),
		Password: getenv("NEO4J_PASSWORD", "password"),
		Database: getenv("NEO4J_DATABASE", "neo4j"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Graph is the Runner implementation backed by neo4j.DriverWithContext. The
// driver owns the connection pool; Graph is safe for concurrent use.
type Graph struct {
	driver neo4j.DriverWithContext
	dbName string
}

// NewGraph creates a Graph from the given config. The driver is lazy: no
// connection is attempted until the first query or an explicit Verify.
func NewGraph(cfg Config) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "fail to create neo4j driver")
	}
	return &Graph{driver: driver, dbName: cfg.Database}, nil
}

// Verify checks connectivity to the store.
func (g *Graph) Verify(ctx context.Context) error {
	return g.driver.VerifyConnectivity(ctx)
}

// Run executes a Cypher statement through neo4j.ExecuteQuery, which handles
// session and transaction management automatically. All records are buffered
// before returning.
func (g *Graph) Run(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		g.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.dbName),
	)
	if err != nil {
		return nil, errors.Wrap(err, "fail to execute neo4j query")
	}

	rows := make([]Row, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, Row(record.AsMap()))
	}
	return rows, nil
}

// Close releases the driver and its connection pool.
func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// EnsureConstraints creates the uniqueness constraints the data model relies
// on. Safe to call on every startup.
func (g *Graph) EnsureConstraints(ctx context.Context) error {
	_, err := g.Run(ctx, "CREATE CONSTRAINT unique_user_email IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE", nil)
	return err
}
