package domain

import "github.com/paulmach/orb"

// IncidentGroup reúne incidentes cujas coordenadas coincidem com 6 casas decimais.
type IncidentGroup struct {
	Latitude   float64
	Longitude  float64
	StreetName string
	Incidents  []CrimeIncident
}

func (g IncidentGroup) Point() orb.Point {
	return orb.Point{g.Longitude, g.Latitude}
}

func (g IncidentGroup) Len() int {
	return len(g.Incidents)
}

type GroupResult struct {
	Groups []IncidentGroup
	// Dropped conta crimes descartados por coordenadas não numéricas.
	Dropped int
}

type CategoryCount struct {
	Category string
	Count    int
}
