package cart

import (
	"context"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
)

// Open builds the slot backend selected by cfg.CartStore. The returned
// close function releases the backend's connections.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (Repository, func(), error) {
	switch cfg.CartStore {
	case "", config.StoreFile:
		return NewFile(cfg.CartFileDir), func() {}, nil
	case config.StorePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		return NewPostgres(pool, logger), pool.Close, nil
	case config.StoreRedis:
		client, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(client), func() { client.Close() }, nil
	case config.StoreDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		return NewDynamoDB(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cart store %q", cfg.CartStore)
	}
}
