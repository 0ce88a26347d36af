package main

import (
	golog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vod-site/config"
	"vod-site/database"
	"vod-site/ffmpeg"
	"vod-site/handlers"
	"vod-site/pipeline"
	"vod-site/videos"
	"vod-site/views"
)

var db *gorm.DB

func main() {

	initLogger()

	_ = godotenv.Load()

	log.Infof("GitSHA: %s", config.GetGitSHA())
	log.Infof("BuildDate: %s", config.GetBuildDate())

	ffmpeg.Init(log)

	gormLogger := logger.New(
		golog.New(os.Stdout, "\r\n", golog.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  false,       // Disable color
		},
	)

	// Create config database
	err := os.MkdirAll(config.GetConfigDir(), 0700)
	if err != nil {
		log.Panicf("failed to create config dir %s", config.GetConfigDir())
	}

	// Initialize database
	dbPath := filepath.Join(config.GetConfigDir(), "videos.db")
	db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Panicf("failed to connect to database %s", dbPath)
	}

	// set only a single connection so we don't actually have concurrent writes
	sqlDB, err := db.DB()
	if err != nil {
		log.Panicln("failed to retrieve database")
	}
	sqlDB.SetMaxOpenConns(1)

	// Migrate the schema
	db.AutoMigrate(&videos.Video{}, &views.View{})

	database.Init(db, log)
	defer database.Fini()

	videoRepo := videos.NewRepository(db)
	viewRepo := views.NewRepository(db)

	pipelineConfig := pipeline.DefaultConfig()
	pipelineConfig.OutputRoot = config.GetVideoDir()
	pipe := pipeline.New(pipelineConfig, videoRepo, log)

	err = handlers.Init(log, videoRepo, viewRepo, pipe)
	if err != nil {
		log.Panicln(err)
	}
	defer handlers.Fini()

	go PeriodicCleanup()

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Routes
	e.POST("/videos/upload", handlers.UploadPost)
	e.GET("/videos/:id/status", handlers.StatusGet)
	e.GET("/videos/:id/stream", handlers.StreamGet)
	e.POST("/videos/:id/views", handlers.ViewPost)
	e.GET("/videos/:id", handlers.VideoGet)
	e.DELETE("/videos/:id", handlers.VideoDelete)

	e.GET("/status", handlers.ServerStatusGet)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server
	e.Logger.Fatal(e.Start(config.GetListenAddr()))
}
