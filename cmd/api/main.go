package main

import (
	"context"
	"log"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/unidoc/unipdf/v3/common/license"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"isoplatform/certification-api/internal/auth"
	"isoplatform/certification-api/internal/certificates"
	"isoplatform/certification-api/internal/config"
	"isoplatform/certification-api/pkg/pdfform"
	"isoplatform/certification-api/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer logger.Sync()

	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			logger.Fatal("Failed to set unipdf license key", zap.Error(err))
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&certificates.Certificate{}); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}
	uploader := storage.NewS3Uploader(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.Storage.CDNBaseURL)

	generator := pdfform.NewGenerator(pdfform.Config{
		TemplatePath: cfg.PDF.TemplatePath,
		FontPath:     cfg.PDF.FontPath,
		FontName:     cfg.PDF.FontName,
		FontSize:     cfg.PDF.FontSize,
		OutputDir:    cfg.PDF.OutputDir,
	}, logger)

	repo := certificates.NewRepository(db)
	provider := certificates.NewStorageProvider(uploader, cfg.PDF.OutputDir)
	service := certificates.NewService(repo, provider, generator, logger)
	handler := certificates.NewHandler(service, logger)

	r := gin.Default()
	r.Use(auth.Middleware(cfg.Security.JWTSecret))

	api := r.Group("/api")
	handler.RegisterRoutes(api)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	logger.Info("server listening", zap.String("addr", cfg.Server.GetServerAddr()))
	if err := r.Run(cfg.Server.GetServerAddr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
