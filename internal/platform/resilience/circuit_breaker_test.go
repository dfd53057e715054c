package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewNamedCircuitBreaker("statsfeed", CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1}, nil)

	now := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestNewNamedCircuitBreaker_NotifiesListener(t *testing.T) {
	var transitions []string
	cfg := CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1}
	b := NewNamedCircuitBreaker("statsfeed", cfg, func(name string, from, to CircuitState) {
		transitions = append(transitions, name+":"+string(from)+"->"+string(to))
	})

	b.RecordFailure()

	if len(transitions) != 1 || transitions[0] != "statsfeed:closed->open" {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}

func TestNewNamedCircuitBreaker_DisabledAllowsEverything(t *testing.T) {
	b := NewNamedCircuitBreaker("chain", CircuitBreakerConfig{Enabled: false}, nil)
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	for i := 0; i < 10; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker must allow calls, got %v", err)
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	if err := DefaultCircuitBreakerConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if err := (CircuitBreakerConfig{}).Validate(); err != nil {
		t.Fatalf("disabled config should be valid: %v", err)
	}

	invalid := []CircuitBreakerConfig{
		{Enabled: true, FailureThreshold: 0, OpenTimeout: time.Second, HalfOpenMaxReq: 1},
		{Enabled: true, FailureThreshold: 1, OpenTimeout: 0, HalfOpenMaxReq: 1},
		{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 0},
	}
	for i, cfg := range invalid {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestNewNamedCircuitBreaker_FillsDefaults(t *testing.T) {
	b := NewNamedCircuitBreaker("chain", CircuitBreakerConfig{Enabled: true}, nil)
	for i := 0; i < DefaultCircuitBreakerConfig().FailureThreshold-1; i++ {
		b.RecordFailure()
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("breaker opened before default threshold: %s", b.State())
	}
	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("breaker should open at default threshold, got %s", b.State())
	}
}

func TestCircuitBreaker_RecordClassifiesErrors(t *testing.T) {
	transient := errors.New("lcd timeout")
	isTransient := func(err error) bool { return errors.Is(err, transient) }
	b := NewNamedCircuitBreaker("chain", CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, nil)

	b.Record(transient, isTransient)
	b.Record(errors.New("contract not found"), isTransient)
	b.Record(transient, isTransient)
	if b.State() != CircuitStateClosed {
		t.Fatalf("caller error should reset the failure streak, got %s", b.State())
	}

	b.Record(transient, isTransient)
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open after consecutive transient failures, got %s", b.State())
	}

	var disabled *CircuitBreaker
	disabled.Record(transient, isTransient)
}
