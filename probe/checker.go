package probe

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Checker reports whether a backing store is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// UnexpectedError wraps failures that are not plain connectivity problems,
// such as a malformed connection string or a rejected command.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "An unexpected error occurred: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// MongoChecker opens a short-lived client and runs isMaster, which needs
// no authentication.
type MongoChecker struct {
	uri     string
	timeout time.Duration
}

func NewMongoChecker(uri string, timeout time.Duration) *MongoChecker {
	return &MongoChecker{uri: uri, timeout: timeout}
}

func (m *MongoChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.uri).
		SetServerSelectionTimeout(m.timeout).
		SetConnectTimeout(m.timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return &UnexpectedError{Err: err}
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "isMaster", Value: 1}}).Err()
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return &UnexpectedError{Err: err}
	}
	return err
}
