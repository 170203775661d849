package entities

// Selection requests assembling a complex Count times
type Selection struct {
	ComplexID ComplexID `json:"complex_id"`
	Count     int64     `json:"count"`
}

// TotalLine is the aggregated requirement for one part
type TotalLine struct {
	PartID        PartID   `json:"part_id"`
	Name          string   `json:"name"`
	Unit          *string  `json:"unit"`
	TotalQuantity Quantity `json:"total_quantity"`
}
