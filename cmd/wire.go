package cmd

import (
	"github.com/doxly/doxly/internal/cache"
	"github.com/doxly/doxly/internal/compress"
	"github.com/doxly/doxly/internal/config"
	"github.com/doxly/doxly/internal/encryption"
	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/queue"
	"github.com/doxly/doxly/internal/service"
	"github.com/doxly/doxly/internal/store"
	"github.com/sirupsen/logrus"
)

// services is the wired application core the CLI commands run against.
type services struct {
	cfg       *config.Config
	store     store.Store
	queue     queue.NotificationQueue
	documents *service.DocumentService
	projects  *service.ProjectService
	workflows *service.WorkflowService
}

// wire builds the service graph from the environment. The notification
// queue and status cache are optional: commands work without a broker or
// redis nearby.
func wire(withQueue bool) *services {
	cfg := config.LoadConfig()
	gormStore := store.NewGormStore(config.GetDb(cfg))

	encryptor, err := encryption.NewEncryptor(cfg.EncryptionType)
	if err != nil {
		logrus.Fatalf("invalid encryption config: %v", err)
	}

	// The key is derived up front so a bad secret or salt fails at startup,
	// not in the middle of an upload.
	var key encryption.Key
	if cfg.Secret != "" || cfg.SaltB64 != "" {
		key, err = encryption.DeriveKeyBase64(cfg.Secret, cfg.SaltB64)
		if err != nil {
			logrus.Fatalf("key derivation failed: %v", err)
		}
	}

	comp, err := compress.New(cfg.Compression)
	if err != nil {
		logrus.Fatalf("invalid compression config: %v", err)
	}

	var notifications queue.NotificationQueue
	if withQueue {
		notifications, err = queue.NewKafkaQueue(cfg.KafkaBrokers, cfg.Topic)
		if err != nil {
			logrus.Fatalf("failed to connect kafka: %v", err)
		}
	}

	var statusCache cache.StatusCache
	if cfg.RedisAddr != "" {
		statusCache = cache.NewRedisStatusCache(cfg.RedisAddr)
	}

	projects := service.NewProjectService(gormStore)
	documents := service.NewDocumentService(
		gormStore,
		encryptor,
		key,
		comp,
		lifecycle.RealClock{},
		projects,
		statusCache,
		notifications,
	)

	return &services{
		cfg:       cfg,
		store:     gormStore,
		queue:     notifications,
		documents: documents,
		projects:  projects,
		workflows: service.NewWorkflowService(gormStore),
	}
}
