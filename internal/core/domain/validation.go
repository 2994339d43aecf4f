package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	msgPostcodeRequired   = "Postcode parameter is required"
	msgInvalidPostcode    = "Invalid postcode format"
	msgInvalidDate        = "Invalid date format. Use YYYY-MM (e.g., 2024-01)"
	msgInvalidCoordinates = "Invalid coordinates. Lat and lng must be valid numbers"
	msgCoordinatesRange   = "Coordinates out of range"
)

var (
	postcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2}$`)
	monthPattern    = regexp.MustCompile(`^\d{4}-\d{2}$`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// IsPostcode aplica o padrão básico de código postal britânico, ignorando
// espaços e caixa.
func IsPostcode(raw string) bool {
	return postcodePattern.MatchString(whitespace.ReplaceAllString(raw, ""))
}

// NormalizePostcode devolve a forma canônica usada como chave de cache.
func NormalizePostcode(raw string) string {
	return strings.ToUpper(whitespace.ReplaceAllString(raw, ""))
}

// ValidateGeocodeQuery verifica a entrada do geocode. Com strict=false,
// entradas que não parecem código postal seguem como busca livre.
func ValidateGeocodeQuery(raw string, strict bool) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", &ValidationError{Message: msgPostcodeRequired, Fields: []string{"postcode"}}
	}
	if strict && !IsPostcode(query) {
		return "", &ValidationError{Message: msgInvalidPostcode, Fields: []string{"postcode"}}
	}
	return query, nil
}

// ValidateMonth aceita apenas YYYY-MM com mês entre 01 e 12.
func ValidateMonth(raw string) error {
	if !monthPattern.MatchString(raw) {
		return &ValidationError{Message: msgInvalidDate, Fields: []string{"date"}}
	}
	if _, err := time.Parse("2006-01", raw); err != nil {
		return &ValidationError{Message: msgInvalidDate, Fields: []string{"date"}}
	}
	return nil
}

// CrimeQuery são os parâmetros já validados de uma consulta de crimes.
type CrimeQuery struct {
	Month     string
	Latitude  float64
	Longitude float64
}

// ParseCrimeQuery valida os três parâmetros obrigatórios na ordem:
// presença, formato da data, coordenadas numéricas e faixa.
func ParseCrimeQuery(date, lat, lng string) (CrimeQuery, error) {
	date, lat, lng = strings.TrimSpace(date), strings.TrimSpace(lat), strings.TrimSpace(lng)

	var missing []string
	if date == "" {
		missing = append(missing, "date")
	}
	if lat == "" {
		missing = append(missing, "lat")
	}
	if lng == "" {
		missing = append(missing, "lng")
	}
	if len(missing) > 0 {
		return CrimeQuery{}, &ValidationError{
			Message: "Missing required parameters: " + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}

	if err := ValidateMonth(date); err != nil {
		return CrimeQuery{}, err
	}

	latitude, lok := parseCoordinate(lat)
	longitude, gok := parseCoordinate(lng)
	if !lok || !gok {
		return CrimeQuery{}, &ValidationError{Message: msgInvalidCoordinates, Fields: invalidFields(lok, gok)}
	}

	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return CrimeQuery{}, err
	}

	return CrimeQuery{Month: date, Latitude: latitude, Longitude: longitude}, nil
}

// ValidateCoordinates verifica lat em [-90, 90] e lng em [-180, 180].
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return &ValidationError{Message: msgInvalidCoordinates, Fields: []string{"lat", "lng"}}
	}
	var fields []string
	if lat < -90 || lat > 90 {
		fields = append(fields, "lat")
	}
	if lng < -180 || lng > 180 {
		fields = append(fields, "lng")
	}
	if len(fields) > 0 {
		return &ValidationError{Message: msgCoordinatesRange, Fields: fields}
	}
	return nil
}

// FormatCoordinate serializa uma coordenada sem perder precisão.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func invalidFields(latOK, lngOK bool) []string {
	var fields []string
	if !latOK {
		fields = append(fields, "lat")
	}
	if !lngOK {
		fields = append(fields, "lng")
	}
	return fields
}
