// internal/domain/status.go
package domain

import "strings"

// Purchase order lifecycle statuses
const (
	POStatusSuggested = "suggested"
	POStatusOrdered   = "ordered"
	POStatusShipped   = "shipped"
	POStatusDelivered = "delivered"
	POStatusCancelled = "cancelled"
)

// Shipment progress stages, in timeline order
const (
	StageCKDPrepared      = "CKD Prepared"
	StageCKDMaterials     = "CKD Materials"
	StageBooking          = "Booking"
	StageShipped          = "Shipped"
	StageCustomsClearance = "Customs Clearance"
	StageCustoms          = "Customs"
	StageAssembly         = "Assembly"
	StageCBUWarehouse     = "CBU Warehouse"
)

// Sales channels
const (
	ChannelEcommerce = "ecommerce"
	ChannelA101      = "A101"
	ChannelWholesale = "wholesale"
	ChannelAll       = "all"
)

var validPOStatuses = map[string]bool{
	POStatusSuggested: true,
	POStatusOrdered:   true,
	POStatusShipped:   true,
	POStatusDelivered: true,
	POStatusCancelled: true,
}

var validStages = map[string]bool{
	StageCKDPrepared:      true,
	StageCKDMaterials:     true,
	StageBooking:          true,
	StageShipped:          true,
	StageCustomsClearance: true,
	StageCustoms:          true,
	StageAssembly:         true,
	StageCBUWarehouse:     true,
}

var validChannels = map[string]bool{
	ChannelEcommerce: true,
	ChannelA101:      true,
	ChannelWholesale: true,
	ChannelAll:       true,
}

// ValidPOStatus reports whether s is a known PO lifecycle status.
func ValidPOStatus(s string) bool {
	return validPOStatuses[strings.ToLower(s)]
}

// ValidStage reports whether s is a known shipment stage.
func ValidStage(s string) bool {
	return validStages[s]
}

// ValidChannel reports whether c is a known sales channel. The empty channel
// is treated as "all".
func ValidChannel(c string) bool {
	if c == "" {
		return true
	}
	return validChannels[c]
}
