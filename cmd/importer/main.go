package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"foodnet/internal/config"
	"foodnet/internal/db"
	"foodnet/internal/importer"
	productrepo "foodnet/internal/repository/product"
	regionrepo "foodnet/internal/repository/region"
	userrepo "foodnet/internal/repository/user"

	"github.com/joho/godotenv"
)

func main() {
	var (
		filePath  string
		regionKey string
	)
	flag.StringVar(&filePath, "file", "", "Path to seller product CSV")
	flag.StringVar(&regionKey, "region", "", "Region key to import into")
	flag.Parse()

	if filePath == "" || regionKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	region, err := regionrepo.NewPostgres(pool).GetByKey(ctx, regionKey)
	if err != nil {
		log.Fatalf("resolve region %q: %v", regionKey, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, nil), userrepo.NewPostgres(pool, nil), region.ID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products into region %s in %s\n", count, regionKey, time.Since(start).Truncate(time.Millisecond))
}
