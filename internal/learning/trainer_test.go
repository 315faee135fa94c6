package learning

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/NduatiK/uchukuzi/internal/config"
	"github.com/NduatiK/uchukuzi/internal/model"
	"github.com/NduatiK/uchukuzi/internal/storage"
)

// linearRows returns n rows of y = 2x + small deterministic noise.
func linearRows(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		rows[i] = []float64{x, 2*x + 0.5*math.Sin(1.7*x)}
	}
	return rows
}

func TestTrainer_EmptyBatchIsNoOp(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	outcome, err := trainer.Learn("tile-a", nil)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if outcome.Persisted || outcome.Kind != "" {
		t.Errorf("expected nothing persisted, got %+v", outcome)
	}
	if store.writes != 0 {
		t.Errorf("expected no writes, got %d", store.writes)
	}
}

func TestTrainer_ModelKindByRowCount(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want model.Kind
	}{
		{"single row", 1, model.KindAverage},
		{"just below threshold", 9, model.KindAverage},
		{"at threshold", 10, model.KindRegression},
		{"well above threshold", 40, model.KindRegression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

			outcome, err := trainer.Learn("tile", linearRows(tt.rows))
			if err != nil {
				t.Fatalf("Learn failed: %v", err)
			}
			if outcome.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, outcome.Kind)
			}
			if store.artifacts["tile"].Kind != tt.want {
				t.Errorf("stored %s, want %s", store.artifacts["tile"].Kind, tt.want)
			}
			if tt.want == model.KindRegression && outcome.Solver == nil {
				t.Error("expected solver info for regression")
			}
		})
	}
}

func TestTrainer_AverageIsMeanOfTargets(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	rows := [][]float64{{0, 10}, {1, 20}, {2, 30}, {3, 40}}
	if _, err := trainer.Learn("tile", rows); err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	a := store.artifacts["tile"]
	if a.Kind != model.KindAverage || a.Average.Value != 25 {
		t.Errorf("expected average 25, got %+v", a.Average)
	}
}

func TestTrainer_OutlierRemovalCanReachRegression(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	// Ten identical targets and one extreme value. The extreme row has a
	// z-score just above 3 and is dropped, leaving exactly ten rows.
	var rows [][]float64
	for i := 0; i < 10; i++ {
		rows = append(rows, []float64{float64(i), 10})
	}
	rows = append(rows, []float64{10, 1000})

	outcome, err := trainer.Learn("tile", rows)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if outcome.Dropped != 1 || outcome.Kept != 10 {
		t.Fatalf("expected 1 dropped 10 kept, got %+v", outcome)
	}
	if outcome.Kind != model.KindRegression {
		t.Fatalf("expected regression, got %s", outcome.Kind)
	}

	got, err := store.artifacts["tile"].Estimate(5)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if math.Abs(got-10) > 1e-6 {
		t.Errorf("expected 10, got %f", got)
	}
}

func TestTrainer_ReplacesPreviousArtifact(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	if _, err := trainer.Learn("tile", linearRows(20)); err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if _, err := trainer.Learn("tile", [][]float64{{0, 7}, {1, 9}}); err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	a := store.artifacts["tile"]
	if a.Kind != model.KindAverage || a.Average.Value != 8 {
		t.Errorf("expected average 8 after retrain, got %+v", a)
	}
	if a.Meta.Rows != 2 {
		t.Errorf("expected metadata for the latest batch, got %+v", a.Meta)
	}
}

func TestTrainer_RecordsMetadata(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	trainer.now = func() time.Time { return fixed }

	if _, err := trainer.Learn(`b'tile-7'`, linearRows(3)); err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	a := store.artifacts["tile-7"]
	if a == nil {
		t.Fatal("expected artifact under sanitized key")
	}
	if a.Meta.Tile != "tile-7" || a.Meta.Rows != 3 || !a.Meta.TrainedAt.Equal(fixed) {
		t.Errorf("unexpected metadata %+v", a.Meta)
	}
}

func TestTrainer_InvalidRows(t *testing.T) {
	store := newMemStore()
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	_, err := trainer.Learn("tile", [][]float64{{0, 1}, {1}})
	if !errors.Is(err, ErrInvalidTrainingData) {
		t.Fatalf("expected ErrInvalidTrainingData, got %v", err)
	}
	if store.writes != 0 {
		t.Error("invalid batch must not write")
	}
}

func TestTrainer_InvalidTile(t *testing.T) {
	trainer := NewTrainer(newMemStore(), DefaultTrainerConfig(), testLogger())

	_, err := trainer.Learn(`b''`, linearRows(3))
	if !errors.Is(err, storage.ErrInvalidTile) {
		t.Errorf("expected ErrInvalidTile, got %v", err)
	}
}

func TestTrainer_StorageFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.writeErr = errDiskFull
	trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

	_, err := trainer.Learn("tile-9", linearRows(3))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Errorf("expected the underlying cause to be kept, got %v", err)
	}
}

func TestTrainer_OverflowingTargetsAreInvalid(t *testing.T) {
	alternating := make([][]float64, 12)
	for i := range alternating {
		y := 1e308
		if i%2 == 1 {
			y = -1e308
		}
		alternating[i] = []float64{float64(i), y}
	}

	tests := []struct {
		name string
		rows [][]float64
	}{
		{"average", [][]float64{{0, 1e308}, {1, 1e308}}},
		{"regression", alternating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			trainer := NewTrainer(store, DefaultTrainerConfig(), testLogger())

			_, err := trainer.Learn("tile", tt.rows)
			if !errors.Is(err, ErrInvalidTrainingData) {
				t.Fatalf("expected ErrInvalidTrainingData, got %v", err)
			}
			if errors.Is(err, ErrStorage) {
				t.Errorf("bad data reported as a storage failure: %v", err)
			}
			if store.writes != 0 {
				t.Errorf("expected no writes, got %d", store.writes)
			}
		})
	}
}

func TestTrainerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Training.MinRegressionRows = 25
	cfg.Regression.C = 10

	tc := TrainerConfigFrom(cfg)
	if tc.MinRegressionRows != 25 || tc.SVR.C != 10 {
		t.Errorf("unexpected trainer config %+v", tc)
	}
	if tc.OutlierZScore != cfg.Training.OutlierZScore || tc.SVR.Gamma != cfg.Regression.Gamma {
		t.Errorf("unexpected trainer config %+v", tc)
	}
}
