package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"fairrank/resume-screener/internal/config"
	"fairrank/resume-screener/internal/logger"
	"fairrank/resume-screener/internal/repositories"
	"fairrank/resume-screener/internal/services"
)

// Seeds the JD repository from a directory of job description files.
// Title is derived from the filename: "backend_engineer.txt" -> "Backend Engineer".
//
// Usage: go run scripts/seed_job_descriptions.go -dir ./data/jds
func main() {
	dir := flag.String("dir", "./data/jds", "directory containing JD files (.pdf, .txt, .md)")
	flag.Parse()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini client", zap.Error(err))
	}

	vectorIndex, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize Qdrant", zap.Error(err))
	}

	ctx := context.Background()
	if err := vectorIndex.EnsureCollection(ctx); err != nil {
		zlog.Fatal("failed to ensure Qdrant collection", zap.Error(err))
	}

	jdRepo := repositories.NewJobDescriptionRepository(db)
	jdStore := services.NewJDStoreService(jdRepo, vectorIndex, geminiService, zlog)
	extractor := services.NewTextExtractorService()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		zlog.Fatal("failed to read JD directory", zap.String("dir", *dir), zap.Error(err))
	}

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() || !extractor.SupportedExtension(entry.Name()) {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		text, err := extractor.ExtractText(path)
		if err != nil {
			zlog.Warn("skipping file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		id, err := jdStore.Insert(ctx, text, titleFromFilename(entry.Name()))
		if err != nil {
			zlog.Error("failed to insert JD", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		zlog.Info("job description seeded",
			zap.String("file", entry.Name()),
			zap.String("jd_id", id.String()))
		seeded++
	}

	zlog.Info("seeding finished", zap.Int("seeded", seeded))
}

func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
