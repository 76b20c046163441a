package chesscom

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketPacerDisabled(t *testing.T) {
	t.Parallel()

	p := newTokenBucketPacer(0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("disabled pacer should never block, got %v", err)
		}
	}
}

func TestTokenBucketPacerPaces(t *testing.T) {
	t.Parallel()

	p := newTokenBucketPacer(50, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// burst of 1 at 50 rps: the second and third call wait ~20ms each
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected pacing to take effect, elapsed %s", elapsed)
	}
}

func TestTokenBucketPacerDefaultsBurst(t *testing.T) {
	t.Parallel()

	p := newTokenBucketPacer(10, 0)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("expected first wait to pass, got %v", err)
	}
}

func TestNilPacerWaits(t *testing.T) {
	t.Parallel()

	var p *limiterAdapter
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("nil pacer must not block, got %v", err)
	}
}
