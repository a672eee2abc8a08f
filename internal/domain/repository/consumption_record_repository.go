package repository

import "github.com/jcastro/dulceria-api/internal/domain/entity"

// ConsumptionRecordRepository puerto de persistencia del consumo de materias
// primas derivado de ventas (solo análisis).
type ConsumptionRecordRepository interface {
	Create(record *entity.ConsumptionRecord) error
	ListBySale(saleID string) ([]*entity.ConsumptionRecord, error)
	ListByRawMaterial(rawMaterialID string, limit, offset int) ([]*entity.ConsumptionRecord, error)
}
