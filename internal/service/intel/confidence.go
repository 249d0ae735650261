package intel

import (
	"fmt"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

// Confidence bucket caps and level boundaries. Advisory context, not a
// statistical guarantee.
const (
	diversityCap      = 25
	diversityPerSrc   = 6
	volumeCapLarge    = 25 // totalItems >= 100
	volumeCapMedium   = 15 // totalItems >= 50
	volumeCapSmall    = 10 // totalItems >= 20
	crossFinCalls     = 10
	crossFinLocation  = 10
	crossCryptoFin    = 5
	highRiskEntityPts = 15
	keyTransferPts    = 10

	confidenceHighAt   = 70
	confidenceMediumAt = 40
)

// AssessConfidence combines source diversity, data volume, cross-source
// corroboration and high-risk discovery into a capped 0-100 score. Each
// firing bucket appends a factor string used verbatim downstream.
func (e *Engine) AssessConfidence(snap Snapshot, highRisk []entity.NetworkEntity, keyTransfers []transfer.KeyTransfer) intel.ConfidenceAssessment {
	score := 0
	factors := []string{}

	// Source diversity. Full four-domain coverage earns the cap outright;
	// partial coverage scales per source.
	sources := snap.SourceCount()
	diversity := sources * diversityPerSrc
	if sources == 4 {
		diversity = diversityCap
	}
	if diversity > diversityCap {
		diversity = diversityCap
	}
	if diversity > 0 {
		score += diversity
		factors = append(factors, fmt.Sprintf("Evidence drawn from %d independent data sources", sources))
	}

	// Data volume.
	items := snap.TotalItems()
	volume := 0
	switch {
	case items >= 100:
		volume = volumeCapLarge
	case items >= 50:
		volume = volumeCapMedium
	case items >= 20:
		volume = volumeCapSmall
	}
	if volume > 0 {
		score += volume
		factors = append(factors, fmt.Sprintf("Substantial data volume: %d records analyzed", items))
	}

	// Cross-source corroboration.
	if snap.HasFinancial() && snap.HasCalls() {
		score += crossFinCalls
		factors = append(factors, "Financial transfers corroborated by call records")
	}
	if snap.HasFinancial() && snap.HasLocation() {
		score += crossFinLocation
		factors = append(factors, "Financial activity corroborated by location telemetry")
	}
	if snap.HasCrypto() && snap.HasFinancial() {
		score += crossCryptoFin
		factors = append(factors, "Cryptocurrency activity linked to the financial graph")
	}

	// High-risk discovery.
	if len(highRisk) > 0 {
		score += highRiskEntityPts
		factors = append(factors, fmt.Sprintf("%d high-risk entities identified", len(highRisk)))
	}
	if len(keyTransfers) > 0 {
		score += keyTransferPts
		factors = append(factors, fmt.Sprintf("%d key transfers isolated", len(keyTransfers)))
	}

	if score > 100 {
		score = 100
	}

	return intel.ConfidenceAssessment{
		Level:      bucketConfidence(score),
		Percentage: score,
		Factors:    factors,
	}
}

func bucketConfidence(score int) intel.ConfidenceLevel {
	switch {
	case score >= confidenceHighAt:
		return intel.ConfidenceHigh
	case score >= confidenceMediumAt:
		return intel.ConfidenceMedium
	default:
		return intel.ConfidenceLow
	}
}
