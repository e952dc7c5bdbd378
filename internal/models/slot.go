package models

// SlotType identifies the equipment slot family an item belongs to
type SlotType string

const (
	SlotHigh      SlotType = "high"
	SlotMid       SlotType = "mid"
	SlotLow       SlotType = "low"
	SlotRanged    SlotType = "ranged"
	SlotTwoHand   SlotType = "two_hand"
	SlotLegendary SlotType = "legendary"
)

// SlotTypeInfo holds the display attributes of a slot type
type SlotTypeInfo struct {
	Type  SlotType `json:"type"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

var slotTypeInfos = map[SlotType]SlotTypeInfo{
	SlotHigh:      {Type: SlotHigh, Label: "High", Color: "#60a5fa"},
	SlotMid:       {Type: SlotMid, Label: "Mid", Color: "#a78bfa"},
	SlotLow:       {Type: SlotLow, Label: "Low", Color: "#34d399"},
	SlotRanged:    {Type: SlotRanged, Label: "Ranged", Color: "#fbbf24"},
	SlotTwoHand:   {Type: SlotTwoHand, Label: "Two-Hand", Color: "#f87171"},
	SlotLegendary: {Type: SlotLegendary, Label: "Legendary", Color: "#f97316"},
}

// ChartedSlotTypes returns the slot types that have a gear score curve,
// in legend order. Legendary items only carry per-item overrides.
func ChartedSlotTypes() []SlotType {
	return []SlotType{SlotHigh, SlotMid, SlotLow, SlotRanged, SlotTwoHand}
}

// SlotTypes returns the display registry in legend order, legendary last
func SlotTypes() []SlotTypeInfo {
	types := append(ChartedSlotTypes(), SlotLegendary)
	infos := make([]SlotTypeInfo, 0, len(types))
	for _, t := range types {
		infos = append(infos, slotTypeInfos[t])
	}
	return infos
}

// Info returns the display attributes for t. Unknown types get a neutral
// color and their raw name as label.
func (t SlotType) Info() SlotTypeInfo {
	if info, ok := slotTypeInfos[t]; ok {
		return info
	}
	return SlotTypeInfo{Type: t, Label: string(t), Color: "#9ca3af"}
}

// Valid reports whether t is part of the fixed enumeration
func (t SlotType) Valid() bool {
	_, ok := slotTypeInfos[t]
	return ok
}
