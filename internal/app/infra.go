package app

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
	"github.com/annerraquino/auth0-cleanup-sb/internal/jobs"
	"github.com/annerraquino/auth0-cleanup-sb/internal/storage"
)

type Infra struct {
	Store *storage.S3Store
	Runs  jobs.Store

	redis *goredis.Client
}

// setupInfra builds the shared clients. The parameter-store merge runs here,
// before anything reads cfg.S3Bucket, so SSM-provided values are in effect
// for the rest of the wiring.
func setupInfra(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Infra, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	config.ApplyParameterStore(ctx, ssm.NewFromConfig(awsCfg), cfg, log)
	config.LogEffective(*cfg, log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	infra := &Infra{
		Store: storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket),
	}

	log.Info("aws clients ready", zap.String("region", cfg.AWSRegion))

	// Run records go to redis when configured, otherwise stay in-process.
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, err
		}

		infra.redis = client
		infra.Runs = jobs.NewRedisStore(client)
		log.Info("redis ready", zap.String("addr", cfg.RedisAddr))
	} else {
		infra.Runs = jobs.NewMemoryStore()
		log.Info("redis not configured; run records kept in memory")
	}

	return infra, nil
}

func (i *Infra) Close() error {
	if i.redis != nil {
		return i.redis.Close()
	}
	return nil
}
