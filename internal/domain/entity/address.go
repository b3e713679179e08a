package entity

import "strings"

// Coordinates par latitud/longitud en grados decimales (WGS84).
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address dirección de un proveedor. Latitude/Longitude son nil mientras no se geocodifique.
type Address struct {
	PostalCode   string   `json:"postal_code"`
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Complement   string   `json:"complement"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	State        string   `json:"state"` // sigla UF (SP, RJ...)
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Geocodable indica si hay datos suficientes para lanzar la geocodificación automática.
func (a Address) Geocodable() bool {
	return strings.TrimSpace(a.Street) != "" && strings.TrimSpace(a.City) != ""
}

// SetCoordinates fija latitud y longitud.
func (a *Address) SetCoordinates(c Coordinates) {
	lat, lon := c.Latitude, c.Longitude
	a.Latitude = &lat
	a.Longitude = &lon
}

// Coordinates devuelve las coordenadas si ambas están definidas.
func (a Address) Coordinates() (Coordinates, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}

// PostalAddress resultado del directorio de CEP (ViaCEP).
type PostalAddress struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
