package records

import "time"

// IntakeLevel describe comida/agua del día.
type IntakeLevel string

const (
	IntakeNone   IntakeLevel = "none"
	IntakeLess   IntakeLevel = "less"
	IntakeNormal IntakeLevel = "normal"
	IntakeMore   IntakeLevel = "more"
)

// ActivityLevel describe la actividad del día.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

// DailyRecord es el check-in diario: un registro por (gato, fecha).
// Semántica de upsert: re-enviar la misma fecha pisa el registro
// conservando ID y CreatedAt originales.
type DailyRecord struct {
	ID    string
	CatID string
	Date  string // YYYY-MM-DD

	UrinationCount  int
	DefecationCount int

	FoodIntake  IntakeLevel
	WaterIntake IntakeLevel
	Activity    ActivityLevel

	Vomited    bool
	VomitCount int

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlySummary agrega los registros de un mes calendario.
type MonthlySummary struct {
	Month          string  `json:"month"` // YYYY-MM
	RecordedDays   int     `json:"recorded_days"`
	AvgUrination   float64 `json:"avg_urination"`
	AvgDefecation  float64 `json:"avg_defecation"`
	VomitDays      int     `json:"vomit_days"`
	LowAppetiteDay int     `json:"low_appetite_days"`
	LowWaterDays   int     `json:"low_water_days"`
	LowActivityDay int     `json:"low_activity_days"`
}
