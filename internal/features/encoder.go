package features

// oneHotSlot sets Slot to 1 when Field holds Category, else 0.
type oneHotSlot struct {
	Slot     string
	Field    string
	Category string
}

// oneHotSlots is the complete categorical encoding. Gender and the
// "Eco Plus" class have no slot, so those values encode as all zeros; the
// trained models expect exactly this column set.
var oneHotSlots = []oneHotSlot{
	{Slot: SlotTravelBusiness, Field: FieldTravelType, Category: string(TravelBusiness)},
	{Slot: SlotTravelPersonal, Field: FieldTravelType, Category: string(TravelPersonal)},
	{Slot: SlotClassEco, Field: FieldClass, Category: string(ClassEco)},
	{Slot: SlotClassBusiness, Field: FieldClass, Category: string(ClassBusiness)},
	{Slot: SlotCustomerTypeDisloyal, Field: FieldCustomerType, Category: string(CustomerDisloyal)},
}

// SlotNames returns the column order every encoded vector follows.
func SlotNames() []string {
	names := []string{SlotAge, SlotFlightDistance, SlotDepartureDelay}
	for _, s := range oneHotSlots {
		names = append(names, s.Slot)
	}
	return names
}

// Encode builds the feature row for in. It does not validate; run input
// through Collect first.
func Encode(in RawInput) FeatureVector {
	v := make(FeatureVector, 0, 3+len(oneHotSlots))
	v = append(v,
		Feature{Name: SlotAge, Value: float64(in.Age)},
		Feature{Name: SlotFlightDistance, Value: in.FlightDistance},
		Feature{Name: SlotDepartureDelay, Value: float64(in.DepartureDelayInMinutes)},
	)
	for _, s := range oneHotSlots {
		var value float64
		if in.category(s.Field) == s.Category {
			value = 1
		}
		v = append(v, Feature{Name: s.Slot, Value: value})
	}
	return v
}
