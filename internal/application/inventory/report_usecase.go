package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// statusRank orden del PDF: primero el inventario problema.
var statusRank = map[movement.Status]int{
	movement.StatusNonMoving:  0,
	movement.StatusSlowMoving: 1,
	movement.StatusNew:        2,
	movement.StatusActive:     3,
}

// ReportUseCase genera el reporte PDF de salud del inventario.
type ReportUseCase struct {
	health    *HealthUseCase
	generator HealthReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(health *HealthUseCase, generator HealthReportGenerator) *ReportUseCase {
	return &ReportUseCase{health: health, generator: generator}
}

// DownloadHealthReport clasifica todo el inventario y lo devuelve como PDF.
func (uc *ReportUseCase) DownloadHealthReport(
	ctx context.Context,
	companyID, companyName, warehouseID string,
) (pdfBytes []byte, filename string, err error) {
	report, err := uc.health.Classify(ctx, companyID, warehouseID, "")
	if err != nil {
		return nil, "", err
	}
	SortByStatus(report.Items)

	pdfBytes, err = uc.generator.GenerateHealthReport(ctx, companyName, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("salud-inventario-%s.pdf", report.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

// SortByStatus ordena NON_MOVING, SLOW_MOVING, NEW, ACTIVE; estable dentro de cada estado.
func SortByStatus(items []ClassifiedPosition) {
	sort.SliceStable(items, func(i, j int) bool {
		return statusRank[items[i].Result.Status] < statusRank[items[j].Result.Status]
	})
}
