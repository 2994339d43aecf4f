package domain

// MapView é tudo o que o mapa no navegador precisa para desenhar marcadores,
// legenda, painel de filtros e resumo.
type MapView struct {
	Focus   *GeocodeResult `json:"focus,omitempty"`
	Markers []Marker       `json:"markers"`
	Legend  []LegendEntry  `json:"legend"`
	Filters []FilterEntry  `json:"filters"`
	Summary Summary        `json:"summary"`
	Bounds  *Bounds        `json:"bounds,omitempty"`
}

type Marker struct {
	Latitude         float64             `json:"lat"`
	Longitude        float64             `json:"lng"`
	StreetName       string              `json:"street_name"`
	Count            int                 `json:"count"`
	DominantCategory string              `json:"dominant_category"`
	Color            string              `json:"color"`
	Size             int                 `json:"size"`
	FontSize         string              `json:"font_size"`
	Categories       []CategoryBreakdown `json:"categories"`
}

type CategoryBreakdown struct {
	Category  string          `json:"category"`
	Label     string          `json:"label"`
	Color     string          `json:"color"`
	Count     int             `json:"count"`
	Incidents []CrimeIncident `json:"incidents"`
}

type LegendEntry struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Count    int    `json:"count"`
}

type FilterEntry struct {
	LegendEntry
	Selected bool `json:"selected"`
}

type Summary struct {
	Total               int `json:"total"`
	Shown               int `json:"shown"`
	Dropped             int `json:"dropped"`
	SelectedCategories  int `json:"selected_categories"`
	AvailableCategories int `json:"available_categories"`
}

type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}
