package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"marketplace-api/internal/config"
)

// OpenMongo dials the cluster described by conf and verifies it answers
// before handing back the database holding the users and products
// collections.
func OpenMongo(conf config.MongoConf, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(conf.ConnectTimeoutSec)*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Infow("mongodb ready", "database", conf.Database)
	return client.Database(conf.Database), client, nil
}
