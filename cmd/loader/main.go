package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"sabor-go/internal/config"
	"sabor-go/internal/infra/database"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"
	"sabor-go/pkg/logger"

	"go.uber.org/zap"
)

// 食材目录导入工具。CSV 每行两列：名称,计量单位，已存在的组合跳过
func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	csvPath := flag.String("file", "data/ingredients.csv", "食材 CSV 文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(&model.Ingredient{}); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Fatal("Failed to open csv file", zap.String("path", *csvPath), zap.Error(err))
	}
	defer f.Close()

	ingredientRepo := repository.NewIngredientRepository(database.Get())

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	createdCount := 0
	lineNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			logger.Warn("Skip malformed csv row", zap.Int("line", lineNum), zap.Error(err))
			continue
		}

		name, unit := row[0], row[1]
		if name == "" || unit == "" {
			logger.Warn("Skip empty csv row", zap.Int("line", lineNum))
			continue
		}

		_, created, err := ingredientRepo.GetOrCreate(name, unit)
		if err != nil {
			logger.Fatal("Failed to import ingredient",
				zap.String("name", name),
				zap.String("unit", unit),
				zap.Error(err),
			)
		}
		if created {
			createdCount++
		}
	}

	logger.Info("Ingredient import finished",
		zap.Int("rows", lineNum),
		zap.Int("created", createdCount),
	)
}
