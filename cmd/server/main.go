package main

import (
	"github.com/pixelgram-app/pixelgram-backend/auth"
	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/server"
	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
	"github.com/pixelgram-app/pixelgram-backend/utils/dotenv"
	Logger "github.com/pixelgram-app/pixelgram-backend/utils/log"
)

func cleanup() {
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	cfg, err := utils.ParseServerConfig()
	if err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	var files file_store.FileStore
	if cfg.S3Bucket != "" {
		files, err = file_store.NewS3FileStore(cfg.S3Bucket, cfg.AWSRegion, cfg.MediaBaseURL)
		if err != nil {
			panic("failed to create s3 file store: " + err.Error())
		}
	} else {
		files, err = file_store.NewLocalFileStore(cfg.MediaDir, cfg.MediaBaseURL)
		if err != nil {
			panic("failed to create local file store: " + err.Error())
		}
	}

	engine := social.NewEngine(db, files)
	issuer := auth.NewTokenIssuer(db, cfg.JWTSecret)

	router := server.NewRouter(db, engine, issuer, files)
	if cfg.S3Bucket == "" {
		// serve local uploads directly in dev setups
		router.Static("/storage", cfg.MediaDir)
	}

	Logger.Log.Info("api server starts up on :" + cfg.Port)
	router.Run(":" + cfg.Port)
}
