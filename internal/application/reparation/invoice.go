package reparation

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// InvoicePDFGenerator genera la representación gráfica (PDF) de una reparación.
type InvoicePDFGenerator interface {
	GenerateReparationPDF(ctx context.Context, rep *entity.Reparation, vehicle *entity.Vehicle) ([]byte, error)
}

// InvoiceUseCase genera la factura PDF de una reparación.
type InvoiceUseCase struct {
	reparationRepo repository.ReparationRepository
	vehicleRepo    repository.VehicleRepository
	generator      InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	reparationRepo repository.ReparationRepository,
	vehicleRepo repository.VehicleRepository,
	generator InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		reparationRepo: reparationRepo,
		vehicleRepo:    vehicleRepo,
		generator:      generator,
	}
}

// DownloadInvoicePDF carga la reparación con su vehículo y genera el PDF.
// Los montos salen de las fotos de precio de las líneas, nunca del catálogo.
func (uc *InvoiceUseCase) DownloadInvoicePDF(ctx context.Context, reparationID string) (pdfBytes []byte, filename string, err error) {
	rep, err := uc.reparationRepo.GetByID(reparationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener reparación: %w", err)
	}
	vehicle, err := uc.vehicleRepo.GetByID(rep.VehicleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener vehículo: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReparationPDF(ctx, rep, vehicle)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	short := rep.ID
	if len(short) > 8 {
		short = short[:8]
	}
	filename = fmt.Sprintf("reparacion_%s.pdf", short)
	return pdfBytes, filename, nil
}
