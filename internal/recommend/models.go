package recommend

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"agrosense/crop-advisor-backend/internal/economics"
	"agrosense/crop-advisor-backend/internal/indices"
	"agrosense/crop-advisor-backend/internal/risk"
	"agrosense/crop-advisor-backend/internal/soil"
	"agrosense/crop-advisor-backend/internal/suitability"
)

// Request asks for a recommendation at a coordinate. AreaHa is recorded
// on the stored result; when a GeoJSON boundary is supplied instead,
// the handler derives the area before the service runs. All economics
// figures stay per-hectare.
// Clients that watch the progress stream supply their own RequestID and
// subscribe to it before posting; otherwise one is generated.
type Request struct {
	RequestID  *uuid.UUID `json:"request_id,omitempty"`
	Latitude   float64    `json:"latitude" binding:"required"`
	Longitude  float64    `json:"longitude" binding:"required"`
	AreaHa     float64    `json:"area_ha"`
	TelegramID *int64     `json:"telegram_id,omitempty"`
	TopN       int        `json:"top_n"`
}

// CropAdvice is one ranked crop with its full evaluation: suitability,
// yield forecast, economics, risks, and the composite final rating that
// determines presentation order.
type CropAdvice struct {
	Suitability   suitability.Result `json:"suitability"`
	YieldForecast *float64           `json:"yield_forecast_cwt_per_ha,omitempty"`
	Economics     *economics.Result  `json:"economics,omitempty"`
	Risk          risk.Assessment    `json:"risk"`
	FinalRating   float64            `json:"final_rating"`
}

// Recommendation is the full result of one pipeline run. It is built
// once and never mutated afterwards.
type Recommendation struct {
	ID          uuid.UUID                  `json:"id"`
	Latitude    float64                    `json:"latitude"`
	Longitude   float64                    `json:"longitude"`
	AreaHa      float64                    `json:"area_ha"`
	Features    suitability.RegionFeatures `json:"region_features"`
	Indices     *indices.Result            `json:"indices,omitempty"`
	Soil        *soil.Profile              `json:"soil,omitempty"`
	TopCrops    []CropAdvice               `json:"top_crops"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// Record is the persisted form of a Recommendation. The full result is
// stored as a JSONB payload; the scalar columns exist for listing and
// retention queries.
type Record struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TelegramID  *int64         `json:"telegram_id,omitempty" gorm:"index"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	AreaHa      float64        `json:"area_ha"`
	TopCrop     string         `json:"top_crop"`
	FinalRating float64        `json:"final_rating"`
	Payload     datatypes.JSON `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName keeps the gorm table name explicit.
func (Record) TableName() string {
	return "recommendations"
}
