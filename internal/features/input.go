package features

// Field names as they appear on the passenger form.
const (
	FieldAge                 = "Age"
	FieldGender              = "Gender"
	FieldCustomerType        = "Customer_Type"
	FieldTravelType          = "Travel_Type"
	FieldClass               = "Class"
	FieldFlightDistance      = "Flight_Distance"
	FieldDepartureDelay      = "departure_delay_in_minutes"
	FieldCleanliness         = "Cleanliness"
	FieldTimeConvenient      = "Departure_Arrival_time_convenient"
	FieldEaseOfOnlineBooking = "Ease_of_Online_booking"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type CustomerType string

const (
	CustomerLoyal    CustomerType = "Loyal Customer"
	CustomerDisloyal CustomerType = "Disloyal Customer"
)

type TravelType string

const (
	TravelBusiness TravelType = "Business travel"
	TravelPersonal TravelType = "Personal Travel"
)

type Class string

const (
	ClassEco      Class = "Eco"
	ClassEcoPlus  Class = "Eco Plus"
	ClassBusiness Class = "Business"
)

// Option lists, in the order the form offers them.
var (
	Genders       = []Gender{GenderMale, GenderFemale}
	CustomerTypes = []CustomerType{CustomerLoyal, CustomerDisloyal}
	TravelTypes   = []TravelType{TravelBusiness, TravelPersonal}
	Classes       = []Class{ClassEco, ClassEcoPlus, ClassBusiness}
)

const (
	MinAge = 1
	MaxAge = 100
)

// RawInput is one passenger form submission.
type RawInput struct {
	Age                            int          `json:"Age"`
	Gender                         Gender       `json:"Gender"`
	CustomerType                   CustomerType `json:"Customer_Type"`
	TravelType                     TravelType   `json:"Travel_Type"`
	Class                          Class        `json:"Class"`
	FlightDistance                 float64      `json:"Flight_Distance"`
	DepartureDelayInMinutes        int          `json:"departure_delay_in_minutes"`
	Cleanliness                    int          `json:"Cleanliness"`
	DepartureArrivalTimeConvenient int          `json:"Departure_Arrival_time_convenient"`
	EaseOfOnlineBooking            int          `json:"Ease_of_Online_booking"`
}

// DefaultInput returns the values the form is pre-filled with.
func DefaultInput() RawInput {
	return RawInput{
		Age:            25,
		Gender:         GenderMale,
		CustomerType:   CustomerLoyal,
		TravelType:     TravelBusiness,
		Class:          ClassEco,
		FlightDistance: 500.0,
	}
}

// category returns the string value of a categorical field, or "" for
// fields that are not categorical.
func (in RawInput) category(field string) string {
	switch field {
	case FieldGender:
		return string(in.Gender)
	case FieldCustomerType:
		return string(in.CustomerType)
	case FieldTravelType:
		return string(in.TravelType)
	case FieldClass:
		return string(in.Class)
	default:
		return ""
	}
}
