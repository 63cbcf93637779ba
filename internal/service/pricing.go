package service

import (
	"fmt"
	"math"

	"github.com/diagnosis/sophies-tours/internal/domain"
)

// ComputeTotal is base price times participants, plus the per-participant
// add-on surcharge when requested. It does not look at remaining capacity.
func ComputeTotal(trip domain.Trip, participants int, includesAddon bool) (float64, error) {
	if participants < 1 {
		return 0, fmt.Errorf("%w: participants must be at least 1", domain.ErrValidation)
	}
	n := float64(participants)
	total := trip.Price * n
	if includesAddon {
		total += trip.AddonSurcharge() * n
	}
	return roundCents(total), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
