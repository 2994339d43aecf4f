package domain

import (
	"math"
	"strconv"
	"strings"
)

// Crime espelha um item da resposta de crimes-street/all-crime.
type Crime struct {
	Category        string         `json:"category"`
	LocationType    string         `json:"location_type"`
	Location        CrimeLocation  `json:"location"`
	Context         string         `json:"context"`
	OutcomeStatus   *OutcomeStatus `json:"outcome_status"`
	PersistentID    string         `json:"persistent_id"`
	ID              int64          `json:"id"`
	LocationSubtype string         `json:"location_subtype"`
	Month           string         `json:"month"`
}

type CrimeLocation struct {
	Latitude  string `json:"latitude"`
	Street    Street `json:"street"`
	Longitude string `json:"longitude"`
}

type Street struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OutcomeStatus struct {
	Category string `json:"category"`
	Date     string `json:"date"`
}

// CrimeIncident é um Crime com coordenadas numéricas.
type CrimeIncident struct {
	Category        string  `json:"category"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	StreetName      string  `json:"street_name"`
	Month           string  `json:"month"`
	OutcomeCategory *string `json:"outcome_category"`
	OutcomeDate     *string `json:"outcome_date"`
	Context         string  `json:"context"`
	PersistentID    string  `json:"persistent_id"`
	ID              int64   `json:"id"`
}

// Incident normaliza o registro. Retorna false quando as coordenadas não são
// números finitos, caso em que o crime não pode ser posicionado no mapa.
func (c Crime) Incident() (CrimeIncident, bool) {
	lat, ok := parseCoordinate(c.Location.Latitude)
	if !ok {
		return CrimeIncident{}, false
	}
	lng, ok := parseCoordinate(c.Location.Longitude)
	if !ok {
		return CrimeIncident{}, false
	}

	incident := CrimeIncident{
		Category:     c.Category,
		Latitude:     lat,
		Longitude:    lng,
		StreetName:   c.Location.Street.Name,
		Month:        c.Month,
		Context:      c.Context,
		PersistentID: c.PersistentID,
		ID:           c.ID,
	}
	if c.OutcomeStatus != nil {
		category, date := c.OutcomeStatus.Category, c.OutcomeStatus.Date
		if category != "" {
			incident.OutcomeCategory = &category
		}
		if date != "" {
			incident.OutcomeDate = &date
		}
	}
	return incident, true
}

func parseCoordinate(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
