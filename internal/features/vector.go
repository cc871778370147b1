package features

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Slot names of the encoded feature row, in model column order.
const (
	SlotAge                  = "Age"
	SlotFlightDistance       = "Flight_Distance"
	SlotDepartureDelay       = "departure_delay_in_minutes"
	SlotTravelBusiness       = "Type_of_Travel_Business"
	SlotTravelPersonal       = "Type_of_Travel_Personal"
	SlotClassEco             = "Class_Eco"
	SlotClassBusiness        = "Class_Business"
	SlotCustomerTypeDisloyal = "CustomerType_disloyal"
)

// Feature is a single named column of a FeatureVector.
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FeatureVector is a single ordered feature row. Callers must treat it as
// read-only; use Names and Values to get copies.
type FeatureVector []Feature

func (v FeatureVector) Len() int { return len(v) }

// Names returns the column names in order.
func (v FeatureVector) Names() []string {
	out := make([]string, len(v))
	for i, f := range v {
		out[i] = f.Name
	}
	return out
}

// Values returns the column values in order.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f.Value
	}
	return out
}

// Value looks up a column by name.
func (v FeatureVector) Value(name string) (float64, bool) {
	for _, f := range v {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// Map returns the row as an unordered map, for rendering.
func (v FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(v))
	for _, f := range v {
		out[f.Name] = f.Value
	}
	return out
}

// Key is a stable textual form of the row, used for cache keys.
func (v FeatureVector) Key() string {
	var b strings.Builder
	for i, f := range v {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(f.Value, 'g', -1, 64))
	}
	return b.String()
}

func (v FeatureVector) String() string {
	return fmt.Sprintf("FeatureVector{%s}", v.Key())
}

// MarshalJSON keeps column order by encoding as a list of name/value pairs.
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Feature(v))
}
