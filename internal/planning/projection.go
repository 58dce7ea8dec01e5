// internal/planning/projection.go
package planning

import (
	"strings"
	"time"

	"github.com/andresuchdata/psi-planner/internal/domain"
)

// ProjectionHorizonDays is the N+3 rolling horizon (three months ahead).
const ProjectionHorizonDays = 90

// ProjectionInputs carries the data for the N+3 end-to-end stock sum.
type ProjectionInputs struct {
	Product   domain.Product
	Inventory *domain.Inventory
	Today     time.Time

	// OpenPOs are the product's non-terminal purchase orders with an ETA
	// set. Pool assignment happens here.
	OpenPOs []domain.PurchaseOrder
}

func stageIn(stage string, candidates ...string) bool {
	if stage == "" {
		return true // unspecified stage counts toward the pool
	}
	for _, c := range candidates {
		if strings.EqualFold(stage, c) {
			return true
		}
	}
	return false
}

// seaShippingPO reports whether a PO is in transit on the water: ETA within
// (today, today+90d], status ordered or shipped, stage shipped/customs or
// unspecified.
func seaShippingPO(po domain.PurchaseOrder, today, horizon time.Time) bool {
	if po.ETA == nil || !po.ETA.After(today) || po.ETA.After(horizon) {
		return false
	}
	if po.Status != domain.POStatusOrdered && po.Status != domain.POStatusShipped {
		return false
	}
	return stageIn(po.Stage, domain.StageShipped, domain.StageCustoms, domain.StageCustomsClearance)
}

// domesticODFPO reports whether a PO is ordered but not yet in transit:
// ETA at most 90 days out, status ordered, stage CKD materials/booking or
// unspecified.
func domesticODFPO(po domain.PurchaseOrder, horizon time.Time) bool {
	if po.ETA == nil || po.ETA.After(horizon) {
		return false
	}
	if po.Status != domain.POStatusOrdered {
		return false
	}
	return stageIn(po.Stage, domain.StageCKDMaterials, domain.StageBooking)
}

// CalculateEndToEndStock sums the four inventory pools into the N+3 stock
// figure:
//
//	end-to-end = branch finished goods + factory kits + sea shipping + domestic ODF
func CalculateEndToEndStock(in ProjectionInputs) domain.EndToEndStock {
	horizon := in.Today.AddDate(0, 0, ProjectionHorizonDays)

	cbuInHand := 0
	kitsInFactory := 0
	if in.Inventory != nil {
		cbuInHand = in.Inventory.CBUInHand
		kitsInFactory = in.Inventory.KitsInFactory
	}

	seaShipping := 0
	domesticODF := 0
	for _, po := range in.OpenPOs {
		if seaShippingPO(po, in.Today, horizon) {
			seaShipping += po.Quantity
		}
		if domesticODFPO(po, horizon) {
			domesticODF += po.Quantity
		}
	}

	endToEnd := cbuInHand + kitsInFactory + seaShipping + domesticODF

	return domain.EndToEndStock{
		ProductID:         in.Product.ID,
		ProductName:       in.Product.Name,
		ProductSKU:        in.Product.SKU,
		CBUInHand:         cbuInHand,
		KitsInFactory:     kitsInFactory,
		SeaShipping:       seaShipping,
		DomesticODF:       domesticODF,
		EndToEndInventory: endToEnd,
		NPlus3Stock:       endToEnd,
		ProjectionDate:    horizon.Format("2006-01-02"),
	}
}
