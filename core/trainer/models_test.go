package trainer

import (
	"testing"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

func TestUpdateRating(t *testing.T) {
	t.Run("first rating sets average directly", func(t *testing.T) {
		trn := Trainer{}
		if err := trn.UpdateRating(4.0); err != nil {
			t.Fatalf("UpdateRating() error = %v", err)
		}
		if trn.Rating != 4.0 {
			t.Errorf("Rating = %v, want 4.0", trn.Rating)
		}
		if trn.TotalRatings != 1 {
			t.Errorf("TotalRatings = %d, want 1", trn.TotalRatings)
		}
	})

	t.Run("running average with rounding", func(t *testing.T) {
		trn := Trainer{Rating: 4.0, TotalRatings: 1}
		if err := trn.UpdateRating(5.0); err != nil {
			t.Fatalf("UpdateRating() error = %v", err)
		}
		if trn.Rating != 4.5 {
			t.Errorf("Rating = %v, want 4.5", trn.Rating)
		}
		if trn.TotalRatings != 2 {
			t.Errorf("TotalRatings = %d, want 2", trn.TotalRatings)
		}
	})

	t.Run("rounds half up to 2 decimals", func(t *testing.T) {
		// (4.0*2 + 5.0) / 3 = 4.3333... -> 4.33
		trn := Trainer{Rating: 4.0, TotalRatings: 2}
		if err := trn.UpdateRating(5.0); err != nil {
			t.Fatalf("UpdateRating() error = %v", err)
		}
		if trn.Rating != 4.33 {
			t.Errorf("Rating = %v, want 4.33", trn.Rating)
		}
	})

	t.Run("out of domain ratings fail", func(t *testing.T) {
		for _, rating := range []float64{0, 0.99, 5.01, -1, 6} {
			trn := Trainer{Rating: 3.0, TotalRatings: 3}
			err := trn.UpdateRating(rating)
			if err == nil {
				t.Errorf("UpdateRating(%v) expected error", rating)
				continue
			}
			if _, ok := err.(*core.ValidationError); !ok {
				t.Errorf("UpdateRating(%v) error = %T, want *core.ValidationError", rating, err)
			}
			if trn.Rating != 3.0 || trn.TotalRatings != 3 {
				t.Errorf("UpdateRating(%v) mutated trainer on failure", rating)
			}
		}
	})
}

func TestAvailableOn(t *testing.T) {
	trn := Trainer{
		Availability: Availability{
			time.Monday: {Start: core.NewTimeOfDay(9, 0), End: core.NewTimeOfDay(17, 0)},
		},
	}

	tests := []struct {
		name string
		day  time.Weekday
		at   core.TimeOfDay
		want bool
	}{
		{name: "within window", day: time.Monday, at: core.NewTimeOfDay(10, 30), want: true},
		{name: "at window start", day: time.Monday, at: core.NewTimeOfDay(9, 0), want: true},
		{name: "at window end", day: time.Monday, at: core.NewTimeOfDay(17, 0), want: false},
		{name: "before window", day: time.Monday, at: core.NewTimeOfDay(8, 59), want: false},
		{name: "off day", day: time.Tuesday, at: core.NewTimeOfDay(10, 30), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trn.AvailableOn(tt.day, tt.at); got != tt.want {
				t.Errorf("AvailableOn(%v, %v) = %v, want %v", tt.day, tt.at, got, tt.want)
			}
		})
	}
}
