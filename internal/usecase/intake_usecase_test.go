package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/pkg/errors"
	"github.com/trace-microservice/internal/usecase"
	"go.uber.org/zap"
)

type intakeFixture struct {
	cityRepo   *MockCityRepository
	sourceRepo *MockSourceRepository
	hikeRepo   *MockHikeRepository
	docRepo    *MockTraceDocumentRepository
	geo        *MockGeoResolver
	cfg        *config.IntakeConfig
	uc         *usecase.IntakeUseCase
}

func newIntakeFixture(t *testing.T, archive bool) *intakeFixture {
	f := &intakeFixture{
		cityRepo:   new(MockCityRepository),
		sourceRepo: new(MockSourceRepository),
		hikeRepo:   new(MockHikeRepository),
		docRepo:    new(MockTraceDocumentRepository),
		geo:        new(MockGeoResolver),
	}
	f.cfg = &config.IntakeConfig{
		Dir:       t.TempDir(),
		Extension: ".gpx",
	}
	if archive {
		f.cfg.ArchiveDir = filepath.Join(t.TempDir(), "archive")
	}
	transformer := usecase.NewTraceTransformer(f.geo, zap.NewNop())
	f.uc = usecase.NewIntakeUseCase(transformer, f.cityRepo, f.sourceRepo, f.hikeRepo, f.docRepo, f.geo, f.cfg, zap.NewNop())
	return f
}

func (f *intakeFixture) writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(f.cfg.Dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntakeRun_ImportsAndArchives(t *testing.T) {
	f := newIntakeFixture(t, true)
	path := f.writeFile(t, "1-Tour_du_Lac.gpx", sampleGPX)

	f.geo.On("ReverseCity", mock.Anything, 45.0, 6.0).Return("Briançon", nil)
	f.hikeRepo.On("ExistsByFilename", mock.Anything, "1-Tour_du_Lac.gpx").Return(false, nil)
	f.cityRepo.On("GetByName", mock.Anything, "Briançon").Return(nil, errors.ErrCityNotFound)
	f.geo.On("Geocode", mock.Anything, "Briançon").Return(44.9, 6.64, true, nil)
	f.geo.On("ReverseAdmin", mock.Anything, 44.9, 6.64).
		Return(&domain.AdminArea{Department: "Hautes-Alpes", Region: "Provence-Alpes-Côte d'Azur", Country: "France"}, nil)
	f.cityRepo.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)
	f.sourceRepo.On("GetOrCreate", mock.Anything, domain.SourceUnknownAut).Return(int64(3), nil)
	f.hikeRepo.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	f.docRepo.On("Insert", mock.Anything, mock.Anything).Return("doc-uuid", nil)
	f.hikeRepo.On("SetDocumentRef", mock.Anything, int64(42), "doc-uuid").Return(nil)

	result, err := f.uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	if assert.Len(t, result.Cities, 1) {
		assert.Equal(t, int64(7), result.Cities[0].ID)
		assert.Equal(t, "Briançon", result.Cities[0].Name)
	}

	// Обработанный файл уехал в архив
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(f.cfg.ArchiveDir, "1-Tour_du_Lac.gpx"))
	assert.NoError(t, err)

	f.hikeRepo.AssertExpectations(t)
	f.docRepo.AssertExpectations(t)
}

func TestIntakeRun_AlreadyImportedRemovesFile(t *testing.T) {
	f := newIntakeFixture(t, false)
	path := f.writeFile(t, "dup.gpx", sampleGPX)

	f.hikeRepo.On("ExistsByFilename", mock.Anything, "dup.gpx").Return(true, nil)

	result, err := f.uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Imported)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestIntakeRun_TransformFailureLeavesFile(t *testing.T) {
	f := newIntakeFixture(t, false)
	path := f.writeFile(t, "broken.gpx", "not a gpx file")

	f.hikeRepo.On("ExistsByFilename", mock.Anything, "broken.gpx").Return(false, nil)

	result, err := f.uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	// Файл остаётся на месте до следующего прохода
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestIntakeRun_DocumentFailureStillImports(t *testing.T) {
	f := newIntakeFixture(t, false)
	path := f.writeFile(t, "orphan.gpx", sampleGPX)

	f.geo.On("ReverseCity", mock.Anything, 45.0, 6.0).Return("Gap", nil)
	f.hikeRepo.On("ExistsByFilename", mock.Anything, "orphan.gpx").Return(false, nil)
	f.cityRepo.On("GetByName", mock.Anything, "Gap").Return(&domain.City{ID: 2, Name: "Gap"}, nil)
	f.sourceRepo.On("GetOrCreate", mock.Anything, domain.SourceUnknownAut).Return(int64(3), nil)
	f.hikeRepo.On("Create", mock.Anything, mock.Anything).Return(int64(9), nil)
	f.docRepo.On("Insert", mock.Anything, mock.Anything).Return("", errors.ErrDocumentStoreError)

	result, err := f.uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Failed)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	// Ссылка на документ не патчится при отсутствии документа
	f.hikeRepo.AssertNotCalled(t, "SetDocumentRef", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeRun_IgnoresOtherFiles(t *testing.T) {
	f := newIntakeFixture(t, false)
	f.writeFile(t, "readme.txt", "hello")
	assert.NoError(t, os.Mkdir(filepath.Join(f.cfg.Dir, "subdir"), 0o755))

	result, err := f.uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Imported+result.Skipped+result.Failed)
	f.hikeRepo.AssertNotCalled(t, "ExistsByFilename", mock.Anything, mock.Anything)
}

func TestSaveUpload(t *testing.T) {
	f := newIntakeFixture(t, false)

	f.hikeRepo.On("ExistsByFilename", mock.Anything, "new.gpx").Return(false, nil)
	f.hikeRepo.On("ExistsByFilename", mock.Anything, "dup.gpx").Return(true, nil)

	err := f.uc.SaveUpload(context.Background(), "new.gpx", []byte(sampleGPX))
	assert.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(f.cfg.Dir, "new.gpx"))
	assert.NoError(t, err)
	assert.Equal(t, sampleGPX, string(data))

	err = f.uc.SaveUpload(context.Background(), "dup.gpx", []byte(sampleGPX))
	assert.ErrorIs(t, err, errors.ErrTraceAlreadyImported)

	err = f.uc.SaveUpload(context.Background(), "notes.txt", []byte("x"))
	assert.ErrorIs(t, err, errors.ErrInvalidExtension)

	err = f.uc.SaveUpload(context.Background(), "../escape.gpx", []byte("x"))
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
}
