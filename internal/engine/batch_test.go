package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tatianab/monty-hall/internal/models"
)

const convergenceGames = 100000

type recordingObserver struct {
	calls int
	last  models.Tally
}

func (r *recordingObserver) RecordBatch(_ models.HostMode, _ models.Strategy, t models.Tally) {
	r.calls++
	r.last = t
}

func TestRunBatchTotals(t *testing.T) {
	rng := NewRand(1)
	for _, mode := range []models.HostMode{models.HostKnows, models.HostRandom} {
		for _, strategy := range models.Strategies() {
			for _, n := range []int{1, 2, 3, 10, 999} {
				tally, err := RunBatch(mode, strategy, n, rng)
				if err != nil {
					t.Fatalf("run batch: %v", err)
				}
				if tally.Total() != n {
					t.Errorf("%v/%v: expected %d games, got %+v", mode, strategy, n, tally)
				}
				if mode == models.HostKnows && tally.EarlyReveals != 0 {
					t.Errorf("host who knows revealed the car %d times", tally.EarlyReveals)
				}
			}
		}
	}
}

func TestRunBatchConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}
	tests := []struct {
		mode      models.HostMode
		strategy  models.Strategy
		winRate   float64
		earlyRate float64
	}{
		{models.HostKnows, models.AlwaysSwitch, 2.0 / 3.0, 0},
		{models.HostKnows, models.AlwaysStay, 1.0 / 3.0, 0},
		{models.HostKnows, models.RandomChoice, 0.5, 0},
		{models.HostRandom, models.AlwaysSwitch, 0.5, 1.0 / 3.0},
		{models.HostRandom, models.AlwaysStay, 0.5, 1.0 / 3.0},
		{models.HostRandom, models.RandomChoice, 0.5, 1.0 / 3.0},
	}
	const tolerance = 0.02
	for i, tt := range tests {
		tally, err := RunBatch(tt.mode, tt.strategy, convergenceGames, NewRand(uint64(1000+i)))
		if err != nil {
			t.Fatalf("run batch: %v", err)
		}
		if diff := math.Abs(tally.WinRate() - tt.winRate); diff > tolerance {
			t.Errorf("%v/%v: expected win rate %.3f, got %.3f", tt.mode, tt.strategy, tt.winRate, tally.WinRate())
		}
		early := float64(tally.EarlyReveals) / float64(tally.Total())
		if diff := math.Abs(early - tt.earlyRate); diff > tolerance {
			t.Errorf("%v/%v: expected early reveal rate %.3f, got %.3f", tt.mode, tt.strategy, tt.earlyRate, early)
		}
	}
}

func TestRunBatchRejectsBadConfig(t *testing.T) {
	rng := script(t)
	if _, err := RunBatch(models.HostKnows, models.AlwaysSwitch, 0, rng); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
	if _, err := RunBatch(models.HostMode(3), models.AlwaysSwitch, 10, rng); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
	if _, err := RunBatch(models.HostKnows, models.Strategy(-1), 10, rng); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
	if rng.used() != 0 {
		t.Errorf("Expected no trials before rejection, %d draws used", rng.used())
	}
}

func TestRunBatchObserver(t *testing.T) {
	obs := &recordingObserver{}
	tally, err := RunBatch(models.HostRandom, models.AlwaysStay, 50, NewRand(3), WithObserver(obs), WithObserver(nil))
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if obs.calls != 1 {
		t.Fatalf("Expected observer to be called once, got %d", obs.calls)
	}
	if obs.last != tally {
		t.Errorf("Expected observer tally %+v, got %+v", tally, obs.last)
	}
}

func TestRunBatchParallel(t *testing.T) {
	ctx := context.Background()
	for _, workers := range []int{1, 3, 8, 64} {
		tally, err := RunBatchParallel(ctx, models.HostRandom, models.AlwaysSwitch, 1001, workers, 42)
		if err != nil {
			t.Fatalf("run parallel batch: %v", err)
		}
		if tally.Total() != 1001 {
			t.Errorf("workers=%d: expected 1001 games, got %+v", workers, tally)
		}
	}

	a, err := RunBatchParallel(ctx, models.HostKnows, models.RandomChoice, 5000, 4, 7)
	if err != nil {
		t.Fatalf("run parallel batch: %v", err)
	}
	b, err := RunBatchParallel(ctx, models.HostKnows, models.RandomChoice, 5000, 4, 7)
	if err != nil {
		t.Fatalf("run parallel batch: %v", err)
	}
	if a != b {
		t.Errorf("Expected the same seed to replay the same tally, got %+v and %+v", a, b)
	}
}

func TestRunBatchParallelConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}
	tally, err := RunBatchParallel(context.Background(), models.HostKnows, models.AlwaysSwitch, convergenceGames, 4, 11)
	if err != nil {
		t.Fatalf("run parallel batch: %v", err)
	}
	if diff := math.Abs(tally.WinRate() - 2.0/3.0); diff > 0.02 {
		t.Errorf("Expected win rate near 0.667, got %.3f", tally.WinRate())
	}
}

func TestRunBatchParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	obs := &recordingObserver{}
	tally, err := RunBatchParallel(ctx, models.HostKnows, models.AlwaysSwitch, 100, 2, 1, WithObserver(obs))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if tally != (models.Tally{}) {
		t.Errorf("Expected no partial tally, got %+v", tally)
	}
	if obs.calls != 0 {
		t.Errorf("Expected no observer call for an aborted batch, got %d", obs.calls)
	}
	if _, err := RunBatchParallel(context.Background(), models.HostKnows, models.AlwaysSwitch, 10, 0, 1); !errors.Is(err, ErrInvalidWorkers) {
		t.Errorf("Expected ErrInvalidWorkers, got %v", err)
	}
}

func FuzzRunBatchTotal(f *testing.F) {
	f.Add(uint64(1), uint16(1), uint8(0), uint8(0))
	f.Add(uint64(42), uint16(500), uint8(1), uint8(2))
	f.Add(uint64(20250211), uint16(3), uint8(1), uint8(1))
	f.Fuzz(func(t *testing.T, seed uint64, n uint16, mode, strategy uint8) {
		games := int(n)%2000 + 1
		m := models.HostMode(mode % 2)
		s := models.Strategy(strategy % 3)
		tally, err := RunBatch(m, s, games, NewRand(seed))
		if err != nil {
			t.Fatalf("run batch: %v", err)
		}
		if tally.Total() != games {
			t.Fatalf("expected %d games, got %+v", games, tally)
		}
		if m == models.HostKnows && tally.EarlyReveals != 0 {
			t.Fatalf("host who knows revealed the car: %+v", tally)
		}
		if r := tally.WinRate(); math.IsNaN(r) || r < 0 || r > 1 {
			t.Fatalf("win rate out of range: %v", r)
		}
	})
}
