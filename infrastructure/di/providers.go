package di

import (
	"context"

	"wishbloom-backend/application/ports"
	"wishbloom-backend/application/services"
	"wishbloom-backend/infrastructure/config"
	dynamostore "wishbloom-backend/infrastructure/persistence/dynamodb"
	memorystore "wishbloom-backend/infrastructure/persistence/memory"
	"wishbloom-backend/pkg/auth"
	apperrors "wishbloom-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Container holds all application dependencies, constructed once at
// startup and reused across requests.
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	WishBloomRepo    ports.WishBloomRepository
	DraftRepo        ports.DraftRepository
	RateLimiter      auth.Limiter
	JWTValidator     *auth.JWTValidator
	ErrorHandler     *apperrors.Handler
	DraftService     *services.DraftService
	PublishService   *services.PublishService
	WishBloomService *services.WishBloomService
	GuestbookService *services.GuestbookService
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig loads the AWS SDK configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideWishBloomRepository selects the document repository by driver.
func ProvideWishBloomRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.WishBloomRepository {
	if cfg.StorageDriver == config.DriverMemory {
		return memorystore.NewWishBloomStore()
	}
	return dynamostore.NewWishBloomRepository(client, cfg.DynamoDBTable, cfg.URLIndexName, cfg.ListIndexName, logger)
}

// ProvideDraftRepository selects the draft repository by driver.
func ProvideDraftRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.DraftRepository {
	if cfg.StorageDriver == config.DriverMemory {
		return memorystore.NewDraftStore()
	}
	return dynamostore.NewDraftRepository(client, cfg.DynamoDBTable, cfg.UserIndexName, logger)
}

// ProvideRateLimiter builds the policy limiter. In Lambda the counters
// must survive across invocations, so they live in the document table;
// standalone servers keep them in process.
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client) auth.Limiter {
	budgets := map[auth.Policy]auth.Budget{
		auth.PolicyPublic:        {Limit: cfg.PublicRPM, Window: auth.DefaultBudgets()[auth.PolicyPublic].Window},
		auth.PolicyAuthenticated: {Limit: cfg.AuthenticatedRPM, Window: auth.DefaultBudgets()[auth.PolicyAuthenticated].Window},
		auth.PolicyUpload:        {Limit: cfg.UploadRPM, Window: auth.DefaultBudgets()[auth.PolicyUpload].Window},
	}
	if cfg.IsLambda && cfg.StorageDriver == config.DriverDynamoDB {
		return auth.NewDynamoLimiter(client, cfg.DynamoDBTable, budgets)
	}
	return auth.NewFixedWindowLimiter(budgets)
}

// ProvideJWTValidator creates the session-token validator.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		// Development fallback; Validate() rejects this in production.
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideErrorHandler creates the handler-boundary error mapper.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.Handler {
	return apperrors.NewHandler(logger, !cfg.IsProduction())
}

// ProvideDraftService creates the draft service.
func ProvideDraftService(drafts ports.DraftRepository, logger *zap.Logger) *services.DraftService {
	return services.NewDraftService(drafts, logger)
}

// ProvidePublishService creates the publish service.
func ProvidePublishService(blooms ports.WishBloomRepository, drafts *services.DraftService, logger *zap.Logger) *services.PublishService {
	return services.NewPublishService(blooms, drafts, logger)
}

// ProvideWishBloomService creates the wishbloom read/update service.
func ProvideWishBloomService(blooms ports.WishBloomRepository, logger *zap.Logger) *services.WishBloomService {
	return services.NewWishBloomService(blooms, logger)
}

// ProvideGuestbookService creates the guestbook service.
func ProvideGuestbookService(blooms ports.WishBloomRepository, logger *zap.Logger) *services.GuestbookService {
	return services.NewGuestbookService(blooms, logger)
}
