package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// IntakeResult summarizes one intake pass.
type IntakeResult struct {
	Imported int
	Skipped  int
	Failed   int
	// Cities touched by imported traces, for enrichment scheduling.
	Cities []*domain.City
}

// IntakeUseCase - use case для импорта файлов треков
type IntakeUseCase struct {
	transformer *TraceTransformer
	cityRepo    repository.CityRepository
	sourceRepo  repository.SourceRepository
	hikeRepo    repository.HikeRepository
	docRepo     repository.TraceDocumentRepository
	geoResolver repository.GeoResolver
	cfg         *config.IntakeConfig
	logger      *zap.Logger
}

func NewIntakeUseCase(
	transformer *TraceTransformer,
	cityRepo repository.CityRepository,
	sourceRepo repository.SourceRepository,
	hikeRepo repository.HikeRepository,
	docRepo repository.TraceDocumentRepository,
	geoResolver repository.GeoResolver,
	cfg *config.IntakeConfig,
	logger *zap.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		transformer: transformer,
		cityRepo:    cityRepo,
		sourceRepo:  sourceRepo,
		hikeRepo:    hikeRepo,
		docRepo:     docRepo,
		geoResolver: geoResolver,
		cfg:         cfg,
		logger:      logger,
	}
}

// SaveUpload drops an uploaded trace file into the intake directory, where
// the next pass picks it up.
func (u *IntakeUseCase) SaveUpload(ctx context.Context, filename string, data []byte) error {
	if !strings.HasSuffix(filename, u.cfg.Extension) {
		return errors.ErrInvalidExtension
	}
	// Запрет обхода каталога через имя файла
	if filepath.Base(filename) != filename {
		return errors.ErrInvalidRequest
	}

	exists, err := u.hikeRepo.ExistsByFilename(ctx, filename)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrTraceAlreadyImported
	}

	if err := os.MkdirAll(u.cfg.Dir, 0o755); err != nil {
		u.logger.Error("Failed to create intake directory", zap.String("dir", u.cfg.Dir), zap.Error(err))
		return errors.ErrInternalServer
	}
	path := filepath.Join(u.cfg.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		u.logger.Error("Failed to save uploaded trace", zap.String("path", path), zap.Error(err))
		return errors.ErrInternalServer
	}

	u.logger.Info("Trace upload saved", zap.String("filename", filename), zap.Int("bytes", len(data)))
	return nil
}

// Run scans the intake directory once. Files already imported are deleted,
// files that fail transformation or persistence stay in place for the next
// pass, successfully imported files are archived (or deleted when no archive
// directory is configured).
func (u *IntakeUseCase) Run(ctx context.Context) (*IntakeResult, error) {
	entries, err := os.ReadDir(u.cfg.Dir)
	if err != nil {
		u.logger.Error("Failed to read intake directory", zap.String("dir", u.cfg.Dir), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	result := &IntakeResult{}
	seenCities := make(map[int64]bool)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), u.cfg.Extension) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		filename := entry.Name()
		path := filepath.Join(u.cfg.Dir, filename)

		exists, err := u.hikeRepo.ExistsByFilename(ctx, filename)
		if err != nil {
			u.logger.Error("Failed to check imported filename", zap.String("filename", filename), zap.Error(err))
			result.Failed++
			continue
		}
		if exists {
			u.logger.Info("Trace already imported, removing file", zap.String("filename", filename))
			if err := os.Remove(path); err != nil {
				u.logger.Warn("Failed to remove imported file", zap.String("path", path), zap.Error(err))
			}
			result.Skipped++
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			u.logger.Error("Failed to read trace file", zap.String("path", path), zap.Error(err))
			result.Failed++
			continue
		}

		trace, err := u.transformer.Transform(ctx, raw, filename)
		if err != nil {
			// File stays in place, the next pass retries it.
			result.Failed++
			continue
		}

		city, err := u.persist(ctx, trace)
		if err != nil {
			u.logger.Error("Failed to persist trace", zap.String("filename", filename), zap.Error(err))
			result.Failed++
			continue
		}

		u.finishFile(path, filename)
		result.Imported++
		if !seenCities[city.ID] {
			seenCities[city.ID] = true
			result.Cities = append(result.Cities, city)
		}
	}

	u.logger.Info("Intake pass done",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

// persist writes the relational row first and the trace document second. A
// failure after the hike row exists leaves an orphaned row with a NULL
// document reference rather than rolling back; the file still counts as
// imported.
func (u *IntakeUseCase) persist(ctx context.Context, trace *domain.NormalizedTrace) (*domain.City, error) {
	city, err := u.resolveCity(ctx, trace)
	if err != nil {
		return nil, err
	}

	sourceID, err := u.sourceRepo.GetOrCreate(ctx, trace.Author)
	if err != nil {
		return nil, err
	}

	hike := &domain.Hike{
		Name:               trace.Name,
		Description:        trace.Description,
		StartLatitude:      trace.StartLatitude,
		StartLongitude:     trace.StartLongitude,
		DistanceKm:         trace.DistanceKm,
		ElevationGainM:     trace.ElevationGainM,
		EstimatedDurationH: trace.EstimatedDurationH,
		Difficulty:         trace.Difficulty,
		Filename:           trace.Filename,
		SourceID:           sourceID,
		CityID:             city.ID,
	}
	hikeID, err := u.hikeRepo.Create(ctx, hike)
	if err != nil {
		return nil, err
	}

	doc := &domain.TraceDocument{
		HikeID:    hikeID,
		Filename:  trace.Filename,
		Name:      trace.Name,
		Points:    trace.Points,
		Waypoints: trace.Waypoints,
		Raw:       string(trace.Raw),
	}
	docID, err := u.docRepo.Insert(ctx, doc)
	if err != nil {
		u.logger.Warn("Hike row left without trace document",
			zap.Int64("hike_id", hikeID),
			zap.String("filename", trace.Filename),
			zap.Error(err))
		return city, nil
	}

	if err := u.hikeRepo.SetDocumentRef(ctx, hikeID, docID); err != nil {
		u.logger.Warn("Hike row left without document reference",
			zap.Int64("hike_id", hikeID),
			zap.String("document_ref", docID),
			zap.Error(err))
	}

	return city, nil
}

// resolveCity returns the existing city row or creates one, geocoding the
// city name for its canonical coordinates and administrative metadata. When
// forward geocoding finds nothing, the trace start point stands in.
func (u *IntakeUseCase) resolveCity(ctx context.Context, trace *domain.NormalizedTrace) (*domain.City, error) {
	city, err := u.cityRepo.GetByName(ctx, trace.City)
	if err == nil {
		return city, nil
	}
	if err != errors.ErrCityNotFound {
		return nil, err
	}

	lat, lon, found, err := u.geoResolver.Geocode(ctx, trace.City)
	if err != nil {
		return nil, err
	}
	if !found {
		lat, lon = trace.StartLatitude, trace.StartLongitude
	}

	city = &domain.City{
		Name:      trace.City,
		Latitude:  lat,
		Longitude: lon,
	}
	if admin, _ := u.geoResolver.ReverseAdmin(ctx, lat, lon); admin != nil {
		if admin.Department != "" {
			city.Department = &admin.Department
		}
		if admin.Region != "" {
			city.Region = &admin.Region
		}
		if admin.Country != "" {
			city.Country = &admin.Country
		}
	}

	id, err := u.cityRepo.Create(ctx, city)
	if err != nil {
		return nil, err
	}
	city.ID = id

	u.logger.Info("City created",
		zap.String("name", city.Name),
		zap.Int64("id", id),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return city, nil
}

func (u *IntakeUseCase) finishFile(path, filename string) {
	if u.cfg.ArchiveDir == "" {
		if err := os.Remove(path); err != nil {
			u.logger.Warn("Failed to remove processed file", zap.String("path", path), zap.Error(err))
		}
		return
	}

	if err := os.MkdirAll(u.cfg.ArchiveDir, 0o755); err != nil {
		u.logger.Warn("Failed to create archive directory", zap.String("dir", u.cfg.ArchiveDir), zap.Error(err))
		return
	}
	dest := filepath.Join(u.cfg.ArchiveDir, filename)
	if err := os.Rename(path, dest); err != nil {
		u.logger.Warn("Failed to archive processed file",
			zap.String("path", path),
			zap.String("dest", dest),
			zap.Error(err))
	}
}
