package interfaces

import "prefacturation_service/internal/domain/entities"

type IReconciliationMetrics interface {
	ObserveOperation(operation string, err error)
	ObserveTransition(from, to entities.PrefacturationStatus)
	ObserveDiscrepancies(discrepancies []entities.Discrepancy)
}
