package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

func TestFaceValueRoundTrip(t *testing.T) {
	cfg := models.DefaultPointsConfig() // 1p per point

	faceValue := CalculatePointsFaceValue(500, cfg)
	if !faceValue.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("face value = %s, want 5.00", faceValue)
	}
	if got := CalculatePointsForDiscount(faceValue, cfg); got != 500 {
		t.Errorf("round trip = %d points, want 500", got)
	}
}

func TestPointsForDiscountRoundsUp(t *testing.T) {
	cfg := models.DefaultPointsConfig()
	cfg.PointFaceValue = decimal.RequireFromString("0.003")

	// £1.00 / £0.003 = 333.33; the platform must charge 334, never 333.
	if got := CalculatePointsForDiscount(decimal.NewFromInt(1), cfg); got != 334 {
		t.Errorf("points for £1 = %d, want 334", got)
	}
}

func TestRoundTripNeverExceedsOriginalPoints(t *testing.T) {
	cfg := models.DefaultPointsConfig()
	for _, points := range []int64{0, 1, 99, 100, 101, 500, 12345} {
		back := CalculatePointsForDiscount(CalculatePointsFaceValue(points, cfg), cfg)
		if back > points {
			t.Errorf("points %d: round trip returned %d, conversion must not inflate", points, back)
		}
	}
}

func TestAvailableDiscountsCappedAtTwenty(t *testing.T) {
	cfg := models.DefaultPointsConfig()

	discounts := GetAvailableDiscounts(100000, cfg)
	if len(discounts) != 20 {
		t.Fatalf("got %d tiers, want 20", len(discounts))
	}
	for i, value := range discounts {
		if value != int64(i+1) {
			t.Errorf("tier %d = %d, want %d", i, value, i+1)
		}
	}
}

func TestAvailableDiscountsSmallBalances(t *testing.T) {
	cfg := models.DefaultPointsConfig()

	if got := GetAvailableDiscounts(250, cfg); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("250 points: %v, want [1 2]", got)
	}
	if got := GetAvailableDiscounts(99, cfg); got != nil {
		t.Errorf("99 points: %v, want none", got)
	}
	if got := GetAvailableDiscounts(0, cfg); got != nil {
		t.Errorf("0 points: %v, want none", got)
	}
	if got := GetAvailableDiscounts(-10, cfg); got != nil {
		t.Errorf("-10 points: %v, want none", got)
	}
}

func TestPlatformCharge(t *testing.T) {
	cfg := models.DefaultPointsConfig() // 2.5%

	charge := CalculatePlatformCharge(decimal.NewFromInt(200), cfg)
	if !charge.Equal(decimal.NewFromInt(5)) {
		t.Errorf("charge on £200 = %s, want 5", charge)
	}
	if got := CalculatePlatformCharge(decimal.NewFromInt(-10), cfg); !got.Equal(decimal.Zero) {
		t.Errorf("charge on negative amount = %s, want 0", got)
	}
}

func TestZeroFaceValueNeverDivides(t *testing.T) {
	cfg := models.DefaultPointsConfig()
	cfg.PointFaceValue = decimal.Zero

	if got := CalculatePointsForDiscount(decimal.NewFromInt(5), cfg); got != 0 {
		t.Errorf("points = %d, want 0 with zero face value", got)
	}
	if got := GetAvailableDiscounts(1000, cfg); got != nil {
		t.Errorf("discounts = %v, want none with zero face value", got)
	}
}
