package entity

import (
	"regexp"
	"strings"
	"time"
)

// Tipos y estados de vehículo.
const (
	TipoTrailer   = "Trailer"
	TipoVan       = "Van"
	TipoBotellero = "Botellero"

	VehiculoCotizacion    = "cotizacion"
	VehiculoMantenimiento = "mantenimiento"
	VehiculoReparado      = "reparado"
)

var placaPattern = regexp.MustCompile(`^[A-Z]{3}-?[0-9]{2}[0-9A-Z]$`)

// NormalizePlaca pasa la placa a mayúsculas sin espacios.
func NormalizePlaca(p string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(p), " ", ""))
}

// ValidPlaca valida una placa ya normalizada (ABC123, ABC-123, ABC12D).
func ValidPlaca(p string) bool { return placaPattern.MatchString(p) }

// ValidTipoVehiculo indica si t es un tipo conocido.
func ValidTipoVehiculo(t string) bool {
	return t == TipoTrailer || t == TipoVan || t == TipoBotellero
}

// ValidEstadoVehiculo indica si e es un estado conocido.
func ValidEstadoVehiculo(e string) bool {
	return e == VehiculoCotizacion || e == VehiculoMantenimiento || e == VehiculoReparado
}

// AssignedProduct producto asignado a un vehículo.
type AssignedProduct struct {
	ProductID   string    `json:"product_id,omitempty"`
	Nombre      string    `json:"nombre"`
	Cantidad    int       `json:"cantidad"`
	AsignadoPor string    `json:"asignado_por"`
	Fecha       time.Time `json:"fecha"`
}

// Vehicle vehículo de la flota de un cliente.
type Vehicle struct {
	ID               string
	Placa            string
	Compania         string
	TipoVehiculo     string
	Estado           string
	EmpleadoAsignado *string
	Productos        []AssignedProduct
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
