package amos

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest indicates a ScoreRequest failed local validation.
// Wrapped with the offending field: fmt.Errorf("revenue: %w", ErrInvalidRequest).
var ErrInvalidRequest = errors.New("invalid score request")

// Sector selects the physics and rhythm profile the service applies.
type Sector string

// Sectors accepted by the service.
const (
	SectorGeneric          Sector = "GENERIC"
	SectorFintech          Sector = "FINTECH"
	SectorFMCGRetail       Sector = "FMCG_RETAIL"
	SectorFMCGBeverage     Sector = "FMCG_BEVERAGE"
	SectorFMCGOils         Sector = "FMCG_OILS"
	SectorFMCGDairy        Sector = "FMCG_DAIRY"
	SectorFMCGPersonalCare Sector = "FMCG_PERSONAL_CARE"
	SectorFMCGFoods        Sector = "FMCG_FOODS"
	SectorFMCGAlcohol      Sector = "FMCG_ALCOHOL"
)

var validSectors = map[Sector]bool{
	SectorGeneric:          true,
	SectorFintech:          true,
	SectorFMCGRetail:       true,
	SectorFMCGBeverage:     true,
	SectorFMCGOils:         true,
	SectorFMCGDairy:        true,
	SectorFMCGPersonalCare: true,
	SectorFMCGFoods:        true,
	SectorFMCGAlcohol:      true,
}

// MVRBlock carries explicit Minimum Viable Relationships scores. When omitted
// from the request, the service infers MVR-I and its dimensions from the
// financial and activity signals. All dimensions are 0-100.
type MVRBlock struct {
	Index             *float64 `json:"mvr_i,omitempty"`
	Embeddedness      *float64 `json:"embeddedness,omitempty"`
	Trust             *float64 `json:"trust,omitempty"`
	CulturalFit       *float64 `json:"cultural_fit,omitempty"`
	Reciprocity       *float64 `json:"reciprocity,omitempty"`
	GuardianVouchers  *float64 `json:"guardian_vouchers,omitempty"`
	Continuity        *float64 `json:"continuity,omitempty"`
	ChannelPermission *float64 `json:"channel_permission,omitempty"`
}

func (m *MVRBlock) validate() error {
	dims := map[string]*float64{
		"mvr.mvr_i":              m.Index,
		"mvr.embeddedness":       m.Embeddedness,
		"mvr.trust":              m.Trust,
		"mvr.cultural_fit":       m.CulturalFit,
		"mvr.reciprocity":        m.Reciprocity,
		"mvr.guardian_vouchers":  m.GuardianVouchers,
		"mvr.continuity":         m.Continuity,
		"mvr.channel_permission": m.ChannelPermission,
	}
	for name, v := range dims {
		if err := optionalPercent(name, v); err != nil {
			return err
		}
	}
	return nil
}

// ScoreRequest is the payload for POST /v1/amos/score. Required fields are
// plain values; optional fields are pointers so absent values stay off the
// wire entirely. Aliases (id/amos_id, opex/expenses, ...) are resolved
// server-side and both spellings are carried.
type ScoreRequest struct {
	// Required core identifiers.
	AMOSID string `json:"amos_id"`
	Sector Sector `json:"sector"`
	Region string `json:"region"`

	// Required core financials and activity.
	Revenue        float64 `json:"revenue"`
	Cash           float64 `json:"cash"`
	DaysSilent     float64 `json:"days_silent"`
	OccupancyRate  float64 `json:"occupancy_rate"`
	CollectionRate float64 `json:"collection_rate"`

	// Optional identifiers and aliases.
	ID        *string `json:"id,omitempty"`
	Name      *string `json:"name,omitempty"`
	LegalName *string `json:"legal_name,omitempty"`

	// Optional financials and operational metrics.
	TotalRevenue  *float64 `json:"total_revenue,omitempty"`
	Expenses      *float64 `json:"expenses,omitempty"`
	Opex          *float64 `json:"opex,omitempty"`
	CashBalance   *float64 `json:"cash_balance,omitempty"`
	TotalDebt     *float64 `json:"total_debt,omitempty"`
	DebtTotal     *float64 `json:"debt_total,omitempty"`
	Arrears       *float64 `json:"arrears,omitempty"`
	Overdue       *float64 `json:"overdue,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`

	DaysSinceLastActivity *float64 `json:"days_since_last_activity,omitempty"`
	DaysSinceLastScan     *float64 `json:"days_since_last_scan,omitempty"`

	GuardianEndorsements *float64 `json:"guardian_endorsements,omitempty"`
	NumberOfCustomers    *float64 `json:"number_of_customers,omitempty"`
	NumberOfSuppliers    *float64 `json:"number_of_suppliers,omitempty"`

	// GrantDependency is the fraction of revenue that is grant funded (0-1).
	GrantDependency *float64 `json:"grant_dependency,omitempty"`

	ActiveUsers     *float64 `json:"active_users,omitempty"`
	ActiveCustomers *float64 `json:"active_customers,omitempty"`

	// SKUSales8W holds SKU-level sales volumes for up to 8 weeks.
	SKUSales8W    []float64 `json:"sku_sales_8w,omitempty"`
	PromoUnits    *float64  `json:"promo_units,omitempty"`
	BaselineUnits *float64  `json:"baseline_units,omitempty"`

	// FX and currency.
	Currency      *string  `json:"currency,omitempty"`
	FXRate        *float64 `json:"fx_rate,omitempty"`
	FXRate12MAgo  *float64 `json:"fx_rate_12m_ago,omitempty"`
	ForwardCover  *float64 `json:"forward_cover,omitempty"`
	FXExposedDebt *float64 `json:"fx_exposed_debt,omitempty"`

	// Infrastructure and corridor.
	OutageHoursPerDay   *float64 `json:"outage_hours_per_day,omitempty"`
	DieselShareOpex     *float64 `json:"diesel_share_opex,omitempty"`
	CorridorID          *string  `json:"corridor_id,omitempty"`
	PortDwellDays       *float64 `json:"port_dwell_days,omitempty"`
	TruckTurnaroundDays *float64 `json:"truck_turnaround_days,omitempty"`

	// Credit configuration.
	CurrentCreditLimitLocal *float64 `json:"current_credit_limit_local,omitempty"`
	PrevGhosting            *float64 `json:"prev_ghosting,omitempty"`

	// Relational and free text.
	MVR *MVRBlock `json:"mvr,omitempty"`

	// UnstructuredText is scanned server-side for fraud, scandal, and
	// social-sanction language.
	UnstructuredText *string `json:"unstructured_text,omitempty"`
}

// Validate checks required fields, numeric ranges, and the sector enum.
// It performs no I/O; Score calls it before anything touches the wire.
func (r *ScoreRequest) Validate() error {
	if r.AMOSID == "" {
		return fmt.Errorf("amos_id is required: %w", ErrInvalidRequest)
	}
	if !validSectors[r.Sector] {
		return fmt.Errorf("unknown sector %q: %w", r.Sector, ErrInvalidRequest)
	}
	if r.Region == "" {
		return fmt.Errorf("region is required: %w", ErrInvalidRequest)
	}

	if err := requireNonNegative("revenue", r.Revenue); err != nil {
		return err
	}
	if err := requireNonNegative("cash", r.Cash); err != nil {
		return err
	}
	if err := requireNonNegative("days_silent", r.DaysSilent); err != nil {
		return err
	}
	if err := requirePercent("occupancy_rate", r.OccupancyRate); err != nil {
		return err
	}
	if err := requirePercent("collection_rate", r.CollectionRate); err != nil {
		return err
	}

	nonNegatives := map[string]*float64{
		"total_revenue":              r.TotalRevenue,
		"expenses":                   r.Expenses,
		"opex":                       r.Opex,
		"cash_balance":               r.CashBalance,
		"total_debt":                 r.TotalDebt,
		"debt_total":                 r.DebtTotal,
		"arrears":                    r.Arrears,
		"overdue":                    r.Overdue,
		"days_since_last_activity":   r.DaysSinceLastActivity,
		"days_since_last_scan":       r.DaysSinceLastScan,
		"guardian_endorsements":      r.GuardianEndorsements,
		"number_of_customers":        r.NumberOfCustomers,
		"number_of_suppliers":        r.NumberOfSuppliers,
		"active_users":               r.ActiveUsers,
		"active_customers":           r.ActiveCustomers,
		"promo_units":                r.PromoUnits,
		"baseline_units":             r.BaselineUnits,
		"fx_rate":                    r.FXRate,
		"fx_rate_12m_ago":            r.FXRate12MAgo,
		"forward_cover":              r.ForwardCover,
		"fx_exposed_debt":            r.FXExposedDebt,
		"outage_hours_per_day":       r.OutageHoursPerDay,
		"port_dwell_days":            r.PortDwellDays,
		"truck_turnaround_days":      r.TruckTurnaroundDays,
		"current_credit_limit_local": r.CurrentCreditLimitLocal,
	}
	for name, v := range nonNegatives {
		if err := optionalNonNegative(name, v); err != nil {
			return err
		}
	}

	if err := optionalFraction("grant_dependency", r.GrantDependency); err != nil {
		return err
	}
	if err := optionalFraction("diesel_share_opex", r.DieselShareOpex); err != nil {
		return err
	}

	if r.MVR != nil {
		if err := r.MVR.validate(); err != nil {
			return err
		}
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s must be >= 0, got %v: %w", name, v, ErrInvalidRequest)
	}
	return nil
}

func requirePercent(name string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be within 0-100, got %v: %w", name, v, ErrInvalidRequest)
	}
	return nil
}

func optionalNonNegative(name string, v *float64) error {
	if v == nil {
		return nil
	}
	return requireNonNegative(name, *v)
}

func optionalPercent(name string, v *float64) error {
	if v == nil {
		return nil
	}
	return requirePercent(name, *v)
}

func optionalFraction(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 1 {
		return fmt.Errorf("%s must be within 0-1, got %v: %w", name, *v, ErrInvalidRequest)
	}
	return nil
}

// Float is a convenience for populating optional fields in literals.
func Float(v float64) *float64 { return &v }

// String is a convenience for populating optional fields in literals.
func String(v string) *string { return &v }
