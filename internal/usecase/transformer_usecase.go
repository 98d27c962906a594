package usecase

import (
	"context"
	"math"
	"path/filepath"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"github.com/trace-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

// TraceTransformer - use case для нормализации GPX треков
type TraceTransformer struct {
	geoResolver repository.GeoResolver
	logger      *zap.Logger
}

func NewTraceTransformer(geoResolver repository.GeoResolver, logger *zap.Logger) *TraceTransformer {
	return &TraceTransformer{
		geoResolver: geoResolver,
		logger:      logger,
	}
}

// Transform parses one trace file and computes its derived metrics. The
// start point is reverse-geocoded to a city; a trace whose start cannot be
// resolved is rejected so the caller can retry the file later.
func (t *TraceTransformer) Transform(ctx context.Context, raw []byte, filename string) (*domain.NormalizedTrace, error) {
	parsed, err := gpx.ParseBytes(raw)
	if err != nil {
		t.logger.Warn("Failed to parse trace file", zap.String("filename", filename), zap.Error(err))
		return nil, errors.ErrTraceMalformed
	}

	var points []domain.Point
	for _, track := range parsed.Tracks {
		for _, segment := range track.Segments {
			for _, pt := range segment.Points {
				points = append(points, domain.Point{
					Lat: pt.Latitude,
					Lon: pt.Longitude,
					Ele: pt.Elevation.Value(),
				})
			}
		}
	}
	if len(points) == 0 {
		t.logger.Warn("Trace file has no track points", zap.String("filename", filename))
		return nil, errors.ErrTraceMalformed
	}

	var waypoints []domain.Waypoint
	for _, wpt := range parsed.Waypoints {
		waypoints = append(waypoints, domain.Waypoint{
			Name: wpt.Name,
			Lat:  wpt.Latitude,
			Lon:  wpt.Longitude,
			Ele:  wpt.Elevation.Value(),
			Desc: wpt.Description,
		})
	}

	distanceKm, gainM := traceMetrics(points)
	durationH := domain.EstimateDurationHours(distanceKm, gainM)
	difficulty := domain.ClassifyDifficulty(distanceKm, gainM)

	name := ""
	if len(parsed.Tracks) > 0 {
		name = strings.TrimSpace(parsed.Tracks[0].Name)
	}
	if name == "" {
		name = NormalizeTraceName(filename)
	}

	author := strings.TrimSpace(parsed.AuthorName)
	if author == "" {
		author = domain.SourceUnknownAut
	}

	city, err := t.geoResolver.ReverseCity(ctx, points[0].Lat, points[0].Lon)
	if err != nil {
		return nil, err
	}
	if city == "" {
		t.logger.Warn("Start point resolved to no city",
			zap.String("filename", filename),
			zap.Float64("lat", points[0].Lat),
			zap.Float64("lon", points[0].Lon))
		return nil, errors.ErrCityNotResolved
	}

	trace := &domain.NormalizedTrace{
		Name:               name,
		Filename:           filename,
		Author:             author,
		City:               city,
		StartLatitude:      points[0].Lat,
		StartLongitude:     points[0].Lon,
		DistanceKm:         distanceKm,
		ElevationGainM:     gainM,
		EstimatedDurationH: durationH,
		Difficulty:         difficulty,
		Points:             points,
		Waypoints:          waypoints,
		Raw:                raw,
	}

	t.logger.Info("Trace transformed",
		zap.String("filename", filename),
		zap.String("name", name),
		zap.String("city", city),
		zap.Int("distance_km", distanceKm),
		zap.Int("elevation_gain_m", gainM),
		zap.String("difficulty", difficulty))

	return trace, nil
}

// traceMetrics computes the 3-D length (rounded up to a full kilometer) and
// the cumulative positive elevation gain of a point sequence.
func traceMetrics(points []domain.Point) (distanceKm, gainM int) {
	var totalKm, gain float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		totalKm += utils.Distance3D(prev.Lat, prev.Lon, prev.Ele, cur.Lat, cur.Lon, cur.Ele)
		if d := cur.Ele - prev.Ele; d > 0 {
			gain += d
		}
	}
	return int(math.Ceil(totalKm)), int(math.Round(gain))
}

// NormalizeTraceName derives a display name from a trace filename: the
// extension and everything up to the first dash go, double underscores mark
// an apostrophe, single underscores a space.
func NormalizeTraceName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if idx := strings.Index(stem, "-"); idx >= 0 {
		stem = stem[idx+1:]
	}
	stem = strings.ReplaceAll(stem, "__", "'")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}
