package http

import (
	"time"

	"github.com/jhoicas/inventory-health/internal/application/dto"
	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

const dateLayout = "2006-01-02"

func toThresholdsDTO(t movement.PlanningThresholds) dto.ThresholdsDTO {
	return dto.ThresholdsDTO{
		SlowMovingDays:               t.SlowMovingDays,
		SlowMovingMinQty:             t.SlowMovingMinQty,
		SlowMovingMinQtyIsPercentage: t.SlowMovingMinQtyIsPercentage,
		SlowMovingMinQtyPercentage:   t.SlowMovingMinQtyPercentage,
		NonMovingDays:                t.NonMovingDays,
		NonMovingMinQty:              t.NonMovingMinQty,
		NonMovingMinQtyIsPercentage:  t.NonMovingMinQtyIsPercentage,
		NonMovingMinQtyPercentage:    t.NonMovingMinQtyPercentage,
	}
}

func fromThresholdsDTO(in dto.ThresholdsDTO) movement.PlanningThresholds {
	return movement.PlanningThresholds{
		SlowMovingDays:               in.SlowMovingDays,
		SlowMovingMinQty:             in.SlowMovingMinQty,
		SlowMovingMinQtyIsPercentage: in.SlowMovingMinQtyIsPercentage,
		SlowMovingMinQtyPercentage:   in.SlowMovingMinQtyPercentage,
		NonMovingDays:                in.NonMovingDays,
		NonMovingMinQty:              in.NonMovingMinQty,
		NonMovingMinQtyIsPercentage:  in.NonMovingMinQtyIsPercentage,
		NonMovingMinQtyPercentage:    in.NonMovingMinQtyPercentage,
	}
}

func toValidationDTO(res movement.ValidationResult) dto.ThresholdValidationDTO {
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return dto.ThresholdValidationDTO{Valid: res.Valid, Errors: errs}
}

func toHealthReportDTO(r *inventory.HealthReport) dto.HealthReportDTO {
	summary := make(map[string]int, len(r.Summary))
	for st, n := range r.Summary {
		summary[string(st)] = n
	}
	items := make([]dto.ClassificationDTO, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, toClassificationDTO(it))
	}
	return dto.HealthReportDTO{
		RequestID:   r.RequestID,
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		Thresholds:  toThresholdsDTO(r.Thresholds),
		Summary:     summary,
		Total:       len(items),
		Items:       items,
	}
}

func toClassificationDTO(it inventory.ClassifiedPosition) dto.ClassificationDTO {
	out := dto.ClassificationDTO{
		ProductID:             it.Position.ProductID,
		SKU:                   it.Position.SKU,
		ProductName:           it.Position.Name,
		CurrentStock:          it.Position.CurrentStockQty,
		FirstInwardDate:       it.Position.FirstInwardDate.Format(dateLayout),
		Status:                string(it.Result.Status),
		DaysSinceLastMovement: it.Result.DaysSinceLastMovement,
		Reason:                it.Result.Reason,
	}
	if it.Position.LastOutboundDate != nil {
		s := it.Position.LastOutboundDate.Format(dateLayout)
		out.LastOutboundDate = &s
	}
	return out
}

func toShipmentRowDTO(r movement.ProjectedRow) dto.ShipmentRowDTO {
	return dto.ShipmentRowDTO{
		Key:           r.Key,
		RecordID:      r.RecordID,
		ItemID:        r.ItemID,
		Placeholder:   r.Placeholder,
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   r.InvoiceDate,
		ReceivingDate: r.ReceivingDate,
		VendorName:    r.VendorName,
		BrandName:     r.BrandName,
		ChallanNumber: r.ChallanNumber,
		ItemName:      r.ItemName,
		SKU:           r.SKU,
		TotalQuantity: r.Quantities.TotalQuantity,
		Received:      r.Quantities.Received,
		Rejected:      r.Quantities.Rejected,
		Short:         r.Quantities.Short,
		Available:     r.Reconciliation.Available,
		InitialShort:  r.Reconciliation.InitialShort,
		ArrivedShort:  r.Reconciliation.ArrivedShort,
	}
}

func fromLineQuantitiesRequest(in dto.LineQuantitiesRequest) movement.LineQuantities {
	return movement.LineQuantities{
		TotalQuantity: in.TotalQuantity,
		Received:      in.Received,
		Rejected:      in.Rejected,
		Short:         in.Short,
	}
}

func toReconciliationDTO(r movement.Reconciliation) dto.ReconciliationDTO {
	return dto.ReconciliationDTO{
		Available:    r.Available,
		InitialShort: r.InitialShort,
		ArrivedShort: r.ArrivedShort,
	}
}
