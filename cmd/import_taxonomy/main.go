package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/medibridge/medibridge-backend/internal/data/db"
	"github.com/medibridge/medibridge-backend/internal/data/repos"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
	"github.com/medibridge/medibridge-backend/internal/utils"
)


// readTSV loads a tab-separated file into column-keyed maps. Rows whose
// column count disagrees with the header are dropped, matching how the
// dataset distributes malformed lines.
func readTSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: empty file", path)
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")

	var rows []map[string]string
	for scanner.Scan() {
		values := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(values) != len(header) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = values[i]
		}
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}

type importer struct {
	log          *logger.Logger
	diseases     repos.DiseaseRepo
	symptoms     repos.SymptomRepo
	associations repos.DiseaseSymptomAssociationRepo
	batchSize    int
}

func (im *importer) importDiseases(ctx context.Context, path string) (map[string]uint, error) {
	rows, err := readTSV(path)
	if err != nil {
		return nil, fmt.Errorf("read diseases: %w", err)
	}
	im.log.Info("Importing diseases", "file", path, "rows", len(rows))

	cuiToID := make(map[string]uint, len(rows))
	imported, skipped := 0, 0
	for _, row := range rows {
		cui := row["Disease_CUI"]
		if cui == "" {
			continue
		}
		existing, err := im.diseases.GetByCUI(ctx, nil, cui)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			cuiToID[cui] = existing.ID
			skipped++
			continue
		}
		created, err := im.diseases.Create(ctx, nil, &types.Disease{
			CUI:         cui,
			Name:        row["Disease_Name"],
			Alias:       row["Alias"],
			Definition:  row["Definition"],
			ExternalIDs: row["External_Ids"],
		})
		if err != nil {
			return nil, fmt.Errorf("import disease %s: %w", cui, err)
		}
		cuiToID[cui] = created.ID
		imported++
		if imported%im.batchSize == 0 {
			im.log.Info("Disease import progress", "imported", imported)
		}
	}
	im.log.Info("Diseases done", "imported", imported, "skipped", skipped)
	return cuiToID, nil
}

func (im *importer) importSymptoms(ctx context.Context, path string) (map[string]uint, error) {
	rows, err := readTSV(path)
	if err != nil {
		return nil, fmt.Errorf("read symptoms: %w", err)
	}
	im.log.Info("Importing symptoms", "file", path, "rows", len(rows))

	cuiToID := make(map[string]uint, len(rows))
	imported, skipped := 0, 0
	for _, row := range rows {
		cui := row["Symptom_CUI"]
		if cui == "" {
			continue
		}
		existing, err := im.symptoms.GetByCUI(ctx, nil, cui)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			cuiToID[cui] = existing.ID
			skipped++
			continue
		}
		created, err := im.symptoms.Create(ctx, nil, &types.Symptom{
			CUI:         cui,
			Name:        row["Symptom_Name"],
			Alias:       row["Alias"],
			Definition:  row["Definition"],
			ExternalIDs: row["External_Ids"],
		})
		if err != nil {
			return nil, fmt.Errorf("import symptom %s: %w", cui, err)
		}
		cuiToID[cui] = created.ID
		imported++
		if imported%im.batchSize == 0 {
			im.log.Info("Symptom import progress", "imported", imported)
		}
	}
	im.log.Info("Symptoms done", "imported", imported, "skipped", skipped)
	return cuiToID, nil
}

func (im *importer) importAssociations(ctx context.Context, path string, diseaseIDs, symptomIDs map[string]uint) error {
	rows, err := readTSV(path)
	if err != nil {
		return fmt.Errorf("read associations: %w", err)
	}
	im.log.Info("Importing associations", "file", path, "rows", len(rows))

	imported, skippedDisease, skippedSymptom := 0, 0, 0
	for _, row := range rows {
		diseaseID, ok := diseaseIDs[row["Disease_CUI"]]
		if !ok {
			skippedDisease++
			continue
		}
		symptomID, ok := symptomIDs[row["Symptom_CUI"]]
		if !ok {
			skippedSymptom++
			continue
		}
		// Add hands back the existing pair on a re-run instead of failing.
		if _, err := im.associations.Add(ctx, nil, diseaseID, symptomID, row["Source"]); err != nil {
			return fmt.Errorf("import association %s -> %s: %w", row["Disease_CUI"], row["Symptom_CUI"], err)
		}
		imported++
		if imported%im.batchSize == 0 {
			im.log.Info("Association import progress", "imported", imported)
		}
	}
	im.log.Info("Associations done",
		"imported", imported,
		"skipped_unknown_disease", skippedDisease,
		"skipped_unknown_symptom", skippedSymptom)
	return nil
}

func main() {
	var dataDir string
	var batch int
	flag.StringVar(&dataDir, "data-dir", "./data/sympgan", "directory holding the dataset TSV files")
	flag.IntVar(&batch, "batch", 1000, "rows between progress log lines")
	flag.Parse()
	if batch < 1 {
		batch = 1000
	}

	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sqlitePath := utils.GetEnv("SQLITE_PATH", "./data/medibridge.db", log)
	sqliteService := db.NewSQLiteService(sqlitePath, log)
	if err := sqliteService.Init(); err != nil {
		log.Error("SQLite init failed", "error", err)
		os.Exit(1)
	}
	defer sqliteService.Close()
	conn, err := sqliteService.DB()
	if err != nil {
		log.Error("SQLite handle unavailable", "error", err)
		os.Exit(1)
	}

	im := &importer{
		log:          log,
		diseases:     repos.NewDiseaseRepo(conn, log),
		symptoms:     repos.NewSymptomRepo(conn, log),
		associations: repos.NewDiseaseSymptomAssociationRepo(conn, log),
		batchSize:    batch,
	}

	ctx := context.Background()
	diseaseIDs, err := im.importDiseases(ctx, filepath.Join(dataDir, "diseases.tsv"))
	if err != nil {
		log.Error("Disease import failed", "error", err)
		os.Exit(1)
	}
	symptomIDs, err := im.importSymptoms(ctx, filepath.Join(dataDir, "symptoms.tsv"))
	if err != nil {
		log.Error("Symptom import failed", "error", err)
		os.Exit(1)
	}
	if err := im.importAssociations(ctx, filepath.Join(dataDir, "symptom_disease_associations.tsv"), diseaseIDs, symptomIDs); err != nil {
		log.Error("Association import failed", "error", err)
		os.Exit(1)
	}
	log.Info("Taxonomy import complete")
}
