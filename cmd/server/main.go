package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"filevault/internal/auth"
	"filevault/internal/blob"
	"filevault/internal/categories"
	"filevault/internal/config"
	"filevault/internal/handler"
	"filevault/internal/middleware"
	"filevault/internal/repository/postgres"
	"filevault/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	// Connect to the blob store that holds file contents
	blobStore, err := blob.NewMinioStore(ctx, &blob.MinioConfig{
		Endpoint:  cfg.BlobEndpoint,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		Bucket:    cfg.BlobBucket,
		UseSSL:    cfg.BlobUseSSL,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to blob store: %v", err)
	}

	// Load the storage category registry for usage breakdowns
	categoryRegistry, err := categories.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load category registry: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	shareRepo := postgres.NewShareRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	parentValidator := service.NewParentValidator(folderRepo)
	folderService := service.NewFolderService(folderRepo, parentValidator, logger)
	fileService := service.NewFileService(fileRepo, parentValidator, blobStore, logger)
	treeService := service.NewTreeService(folderRepo, fileRepo, logger)
	viewService := service.NewViewService(folderRepo, fileRepo, logger)
	searchService := service.NewSearchService(folderRepo, fileRepo, logger)
	itemService := service.NewItemService(folderRepo, fileRepo, shareRepo, blobStore, txManager, parentValidator, logger)
	shareService := service.NewShareService(shareRepo, fileRepo, blobStore, txManager, logger)
	storageService := service.NewStorageService(fileRepo, folderRepo, categoryRegistry, cfg.StorageQuotaBytes, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, treeService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)
	viewHandler := handler.NewViewHandler(viewService, searchService, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)
	usageHandler := handler.NewUsageHandler(storageService, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Views and search
	mux.HandleFunc("GET /api/items", viewHandler.ListItems)
	mux.HandleFunc("GET /api/search", viewHandler.Search)

	// Folders
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/path", folderHandler.GetPath)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)

	// Files
	mux.HandleFunc("POST /api/files", fileHandler.Upload)
	mux.HandleFunc("GET /api/files/{id}/download", fileHandler.Download)
	mux.HandleFunc("GET /api/files/{id}/shares", shareHandler.ListGrants)

	// Item mutations (file or folder, discriminated by "kind")
	mux.HandleFunc("POST /api/items/{id}/star", itemHandler.SetStarred)
	mux.HandleFunc("POST /api/items/{id}/trash", itemHandler.Trash)
	mux.HandleFunc("POST /api/items/{id}/restore", itemHandler.Restore)
	mux.HandleFunc("POST /api/items/{id}/rename", itemHandler.Rename)
	mux.HandleFunc("PATCH /api/items/{id}", itemHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemHandler.Delete)

	// Shares
	mux.HandleFunc("POST /api/shares", shareHandler.Share)
	mux.HandleFunc("GET /api/shares/{id}", shareHandler.Resolve) // public
	mux.HandleFunc("DELETE /api/shares/{id}", shareHandler.Revoke)

	// Storage usage
	mux.HandleFunc("GET /api/usage", usageHandler.GetUsage)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.RequestLogger(logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  config.RequestTimeout,
		WriteTimeout: config.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
