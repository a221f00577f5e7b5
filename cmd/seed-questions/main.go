package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/database"
	"github.com/careerbridge/careerbridge-backend/internal/logger"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout of a question bank.
type seedFile struct {
	CollegeID *string        `yaml:"collegeId"`
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	CollegeID       *string               `yaml:"collegeId"`
	Type            model.QuestionType    `yaml:"type"`
	Text            string                `yaml:"text"`
	DifficultyLevel model.DifficultyLevel `yaml:"difficultyLevel"`
	Categories      []string              `yaml:"categories"`
	Options         []seedOption          `yaml:"options"`
}

type seedOption struct {
	ID          string `yaml:"id"`
	Text        string `yaml:"text"`
	IsCorrect   bool   `yaml:"isCorrect"`
	Explanation string `yaml:"explanation"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup completes first.
func run(args []string) int {
	fs := flag.NewFlagSet("seed-questions", flag.ContinueOnError)
	path := fs.String("file", "seeds/questions.yaml", "YAML question bank to import")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.StorageBackend == config.StorageMemory {
		log.Error().Msg("seed-questions needs a persistent STORAGE_BACKEND")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	items, collegeID, err := load(*path)
	if err != nil {
		log.Error().Err(err).Str("file", *path).Msg("Failed to read question bank")
		return 2
	}

	backend, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open storage")
		return 1
	}
	defer backend.Close()

	questionService := service.NewQuestionService(backend.Stores.Questions, backend.Stores.Tests, log)

	fmt.Printf("=== Seeding %d Questions ===\n", len(items))

	res := questionService.BulkUpload(ctx, items, collegeID)
	for _, f := range res.Failed {
		fmt.Printf("  #%d %s %v\n", f.Index, f.Reason, f.Fields)
	}

	fmt.Printf("\nCreated %d, failed %d\n", res.Created, len(res.Failed))
	if len(res.Failed) > 0 {
		return 1
	}
	return 0
}

// load parses a question bank file into service input.
func load(path string) ([]model.QuestionInput, *string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, nil, fmt.Errorf("no questions in %s", path)
	}

	items := make([]model.QuestionInput, 0, len(file.Questions))
	if err := copier.CopyWithOption(&items, &file.Questions, copier.Option{DeepCopy: true}); err != nil {
		return nil, nil, fmt.Errorf("map questions: %w", err)
	}
	return items, file.CollegeID, nil
}
