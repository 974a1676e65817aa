package entity

import "time"

// VehicleOwner datos de contacto del dueño del vehículo (embebido).
type VehicleOwner struct {
	Name  string
	Phone string
	Email string
}

// Vehicle representa un vehículo de cliente atendido en el taller.
type Vehicle struct {
	ID           string
	Make         string
	Model        string
	Year         int
	LicensePlate string
	VIN          string
	Owner        VehicleOwner
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
