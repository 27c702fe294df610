package amos

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrShapeMismatch indicates a 200 response body did not match the expected
// response shape. Surfaced to callers as a KindValidation *Error.
var ErrShapeMismatch = errors.New("response shape mismatch")

// ConfidenceInterval bounds an RRS score estimate.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Error float64 `json:"error"`
}

// GhostingBlock describes the entity's silence/abandonment trajectory.
type GhostingBlock struct {
	Flag                *bool    `json:"flag,omitempty"`
	IsDead              *bool    `json:"isDead,omitempty"`
	Impact              *float64 `json:"impact,omitempty"`
	SurvivalProbability *float64 `json:"survival_probability,omitempty"`
	DaysToGhost         *float64 `json:"days_to_ghost,omitempty"`
	ExpectedRhythm      *float64 `json:"expectedRhythm,omitempty"`
}

// ExplanationBlock carries the human-readable scoring narrative.
type ExplanationBlock struct {
	Porosity               *string `json:"porosity,omitempty"`
	MVRShield              *string `json:"mvr_shield,omitempty"`
	MVRShieldFactor        *string `json:"mvr_shield_factor,omitempty"`
	FinalContainedPD       *string `json:"final_contained_pd,omitempty"`
	ShieldImpactPercentage *string `json:"shield_impact_percentage,omitempty"`
	Headline               *string `json:"headline,omitempty"`
	RiskNarrative          *string `json:"risk_narrative,omitempty"`
}

// CashMetricsBlock summarizes runway and burn.
type CashMetricsBlock struct {
	CashRunwayDays *int     `json:"cash_runway_days,omitempty"`
	RunwayState    *string  `json:"runwayState,omitempty"` // CRITICAL, DANGER, WATCH, HEALTHY, STRONG
	NetCash        *float64 `json:"net_cash,omitempty"`
	BurnRatePerDay *float64 `json:"burn_rate_per_day,omitempty"`
}

// DiagnosticsBlock carries secondary model diagnostics.
type DiagnosticsBlock struct {
	AFIScore            *float64 `json:"AFI_SCORE,omitempty"`
	PotemkinRawGap      *float64 `json:"POTEMKIN_RAW_GAP,omitempty"`
	PotemkinGap         *float64 `json:"POTEMKIN_GAP,omitempty"`
	CannibalisationRisk *float64 `json:"CANNIBALISATION_RISK,omitempty"`
	SKUVolatilityCV     *float64 `json:"SKU_VOLATILITY_CV,omitempty"`
	SKUSampleSize       *int     `json:"SKU_SAMPLE_SIZE,omitempty"`
}

// Meta is the score response's meta block. Wire keys mirror the service's
// uppercase naming; every field is optional.
type Meta struct {
	Explanation *ExplanationBlock `json:"EXPLANATION,omitempty"`

	Sector          *string  `json:"SECTOR,omitempty"`
	Region          *string  `json:"REGION,omitempty"`
	GrantDependency *float64 `json:"GRANT_DEPENDENCY,omitempty"`
	DaysSilent      *float64 `json:"DAYS_SILENT,omitempty"`
	PDGhost         *float64 `json:"PD_GHOST,omitempty"`

	Ghosting *GhostingBlock `json:"ghosting,omitempty"`

	HasPotemkinRisk *bool   `json:"HAS_POTEMKIN_RISK,omitempty"`
	PotemkinGapBand *string `json:"POTEMKIN_GAP_BAND,omitempty"` // NONE, LOW, HIGH

	MVRIndex               *float64 `json:"MVR_I,omitempty"`
	MVRBand                *string  `json:"MVR_BAND,omitempty"` // EMBEDDED, VIABLE, FRAGILE
	MVRStrongestDimensions []string `json:"MVR_STRONGEST_DIMENSIONS,omitempty"`
	MVRWeakestDimensions   []string `json:"MVR_WEAKEST_DIMENSIONS,omitempty"`

	MVRRV *float64 `json:"MVR_RV,omitempty"`
	MVRWV *float64 `json:"MVR_WV,omitempty"`
	MVRGD *float64 `json:"MVR_GD,omitempty"`
	MVREQ *float64 `json:"MVR_EQ,omitempty"`
	MVRAS *float64 `json:"MVR_AS,omitempty"`
	MVRRC *float64 `json:"MVR_RC,omitempty"`

	CollectionRate *float64 `json:"COLLECTION_RATE,omitempty"`

	FXGapRatio       *float64 `json:"FX_GAP_RATIO,omitempty"`
	FXPDMultiplier   *float64 `json:"FX_PD_MULTIPLIER,omitempty"`
	ColdChainLeakage *float64 `json:"COLD_CHAIN_LEAKAGE,omitempty"`
	CorridorLeakage  *float64 `json:"CORRIDOR_LEAKAGE,omitempty"`

	PromoIncrementality *float64 `json:"PROMO_INCREMENTALITY,omitempty"`
	PromoQuality        *string  `json:"PROMO_QUALITY,omitempty"`

	DaysToDeathCapped *bool   `json:"DAYS_TO_DEATH_CAPPED,omitempty"`
	TimelineSource    *string `json:"TIMELINE_SOURCE,omitempty"`
	TimelineTrend     *string `json:"TIMELINE_TREND,omitempty"`

	DataCompletenessScore *int     `json:"DATA_COMPLETENESS_SCORE,omitempty"`
	MissingFields         []string `json:"MISSING_FIELDS,omitempty"`
	CriticalMissingFields []string `json:"CRITICAL_MISSING_FIELDS,omitempty"`

	MVRGateDecision *string  `json:"MVR_GATE_DECISION,omitempty"`
	MVRGateReasons  []string `json:"MVR_GATE_REASONS,omitempty"`

	CompassFitBand     *string `json:"COMPASS_FIT_BAND,omitempty"`
	CompassMVRQuadrant *string `json:"COMPASS_MVR_QUADRANT,omitempty"`

	Headline *string  `json:"HEADLINE,omitempty"`
	Flags    []string `json:"FLAGS,omitempty"`

	NetworkHealth *float64 `json:"NETWORK_HEALTH,omitempty"`

	CashMetrics *CashMetricsBlock `json:"CASH_METRICS,omitempty"`
	Diagnostics *DiagnosticsBlock `json:"DIAGNOSTICS,omitempty"`

	SeasonalFactor      *float64 `json:"SEASONAL_FACTOR,omitempty"`
	GrantHaircutApplied *bool    `json:"GRANT_HAIRCUT_APPLIED,omitempty"`
}

// CreditEngine carries the safe-credit-limit recommendation.
type CreditEngine struct {
	EstimatedSafeCreditLimitLocal *float64 `json:"ESTIMATED_SAFE_CREDIT_LIMIT_LOCAL,omitempty"`
	EstimatedSafeCreditLimitUSD   *float64 `json:"ESTIMATED_SAFE_CREDIT_LIMIT_USD,omitempty"`
	RecommendedAction             *string  `json:"RECOMMENDED_ACTION,omitempty"`
	MVRDecision                   *string  `json:"MVR_DECISION,omitempty"`
	SeasonalFactor                *float64 `json:"SEASONAL_FACTOR,omitempty"`
	GrantHaircutApplied           *bool    `json:"GRANT_HAIRCUT_APPLIED,omitempty"`
	ExposureToRevenueRatio        *float64 `json:"EXPOSURE_TO_REVENUE_RATIO,omitempty"`
	RecommendedToCurrentRatio     *float64 `json:"RECOMMENDED_TO_CURRENT_RATIO,omitempty"`
}

// Wrapper identifies the gateway wrapper that served the request.
type Wrapper struct {
	Version     *string    `json:"version,omitempty"`
	CoreVersion *string    `json:"core_version,omitempty"`
	RequestID   *string    `json:"request_id,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// ModelMetadata describes the scoring model that produced the response.
type ModelMetadata struct {
	ModelVersion     *string `json:"model_version,omitempty"`
	CoreVersion      *string `json:"core_version,omitempty"`
	WrapperVersion   *string `json:"wrapper_version,omitempty"`
	CalibrationDate  *string `json:"calibration_date,omitempty"`
	RegulatoryStatus *string `json:"regulatory_status,omitempty"`
	PhysicsFramework *string `json:"physics_framework,omitempty"`
}

// ScoreResponse is the typed result of POST /v1/amos/score.
type ScoreResponse struct {
	RRSScore              float64            `json:"RRS_SCORE"`
	RRSConfident          float64            `json:"RRS_CONFIDENT"`
	RRSConfidence         int                `json:"RRS_CONFIDENCE"`
	RRSConfidenceInterval ConfidenceInterval `json:"RRS_CONFIDENCE_INTERVAL"`

	// PzPorosity is the porosity probability, 0-1.
	PzPorosity float64 `json:"Pz_POROSITY"`

	Meta          Meta          `json:"meta"`
	CreditEngine  CreditEngine  `json:"CREDIT_ENGINE"`
	Wrapper       Wrapper       `json:"WRAPPER"`
	ModelMetadata ModelMetadata `json:"MODEL_METADATA"`
}

// scoreRequiredKeys lists the wire keys a well-formed score response must carry.
var scoreRequiredKeys = []string{
	"RRS_SCORE",
	"RRS_CONFIDENT",
	"RRS_CONFIDENCE",
	"RRS_CONFIDENCE_INTERVAL",
	"Pz_POROSITY",
	"meta",
	"CREDIT_ENGINE",
	"WRAPPER",
	"MODEL_METADATA",
}

// decodeScoreResponse validates a raw 200 body against the score response
// shape. Any mismatch wraps ErrShapeMismatch.
func decodeScoreResponse(raw map[string]any) (*ScoreResponse, error) {
	for _, key := range scoreRequiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("missing field %q: %w", key, ErrShapeMismatch)
		}
	}

	var resp ScoreResponse
	if err := reparse(raw, &resp); err != nil {
		return nil, err
	}

	if resp.RRSConfidence < 0 || resp.RRSConfidence > 100 {
		return nil, fmt.Errorf("RRS_CONFIDENCE %d outside 0-100: %w", resp.RRSConfidence, ErrShapeMismatch)
	}
	if resp.PzPorosity < 0 || resp.PzPorosity > 1 {
		return nil, fmt.Errorf("Pz_POROSITY %v outside 0-1: %w", resp.PzPorosity, ErrShapeMismatch)
	}
	return &resp, nil
}

// HealthResponse is the typed result of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Wrapper   string    `json:"wrapper"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var healthRequiredKeys = []string{"status", "version", "wrapper", "timestamp"}

// decodeHealthResponse validates a raw 200 body against the health shape.
func decodeHealthResponse(raw map[string]any) (*HealthResponse, error) {
	for _, key := range healthRequiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("missing field %q: %w", key, ErrShapeMismatch)
		}
	}

	var resp HealthResponse
	if err := reparse(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// reparse round-trips a decoded JSON value into a typed struct, converting
// type mismatches into ErrShapeMismatch instead of leaking json internals.
func reparse(raw map[string]any, target any) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrShapeMismatch)
	}
	if err := json.Unmarshal(buf, target); err != nil {
		return fmt.Errorf("%v: %w", err, ErrShapeMismatch)
	}
	return nil
}
