package params

import (
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.Speed != 1.0 || p.Omega != 0.2 || p.Couple != 0.7 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestStoreSetPartial(t *testing.T) {
	s := NewStore(Default())
	got := s.Set(WithSpeed(2.5))

	want := Params{Speed: 2.5, Omega: 0.2, Couple: 0.7}
	if got != want {
		t.Errorf("Set returned %+v, want %+v", got, want)
	}
	if s.Get() != want {
		t.Errorf("Get returned %+v, want %+v", s.Get(), want)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore(Default())
	snap := s.Get()
	s.Set(WithOmega(1.5))
	if snap.Omega != 0.2 {
		t.Errorf("snapshot changed after Set: %+v", snap)
	}
}

func TestStoreEmptyUpdate(t *testing.T) {
	s := NewStore(Default())
	calls := 0
	s.OnChange(func(Params) { calls++ })
	if got := s.Set(Update{}); got != Default() {
		t.Errorf("empty update changed params: %+v", got)
	}
	s.Set(WithCouple(0.1))
	if calls != 1 {
		t.Errorf("expected 1 listener call, got %d", calls)
	}
}

func TestStoreConcurrentSet(t *testing.T) {
	s := NewStore(Default())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(Update{Speed: ptr(3), Omega: ptr(2)})
		}()
		go func() {
			defer wg.Done()
			p := s.Get()
			// both fields move together or not at all
			if (p.Speed == 3) != (p.Omega == 2) {
				t.Errorf("torn read: %+v", p)
			}
		}()
	}
	wg.Wait()
}

func TestRangeSnap(t *testing.T) {
	tests := []struct {
		r    Range
		in   float64
		want float64
	}{
		{SpeedRange, 0.0, 0.1},
		{SpeedRange, 5.0, 3.0},
		{SpeedRange, 1.04, 1.0},
		{SpeedRange, 1.06, 1.1},
		{OmegaRange, 0.22, 0.2},
		{OmegaRange, 0.23, 0.25},
		{CoupleRange, -1, 0},
		{CoupleRange, 0.71, 0.7},
	}
	for _, tt := range tests {
		if got := tt.r.Snap(tt.in); got != tt.want {
			t.Errorf("%s.Snap(%v) = %v, want %v", tt.r.Name, tt.in, got, tt.want)
		}
	}
}

func TestRangeNudge(t *testing.T) {
	if got := SpeedRange.Nudge(1.0, 1); got != 1.1 {
		t.Errorf("expected 1.1, got %v", got)
	}
	if got := SpeedRange.Nudge(3.0, 1); got != 3.0 {
		t.Errorf("expected clamp at 3, got %v", got)
	}
	if got := CoupleRange.Nudge(0.0, -1); got != 0 {
		t.Errorf("expected clamp at 0, got %v", got)
	}
}

func TestRangeRatio(t *testing.T) {
	if got := CoupleRange.Ratio(0.5); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := SpeedRange.Ratio(10); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestFieldAndSet(t *testing.T) {
	p := Default()
	for _, r := range Ranges {
		p = Set(r.Name, r.Max).Apply(p)
		if p.Field(r.Name) != r.Max {
			t.Errorf("%s: expected %v, got %v", r.Name, r.Max, p.Field(r.Name))
		}
	}
	if !Set("unknown", 1).Empty() {
		t.Error("unknown field should produce an empty update")
	}
}

func ptr(v float64) *float64 { return &v }
