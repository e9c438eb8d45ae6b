package frs

// Day is one entry of the weekly reservation API response. Field names
// follow the portal's JSON.
type Day struct {
	DayTitle string `json:"DayTitle"`
	DayDate  string `json:"DayDate"`
	// DayState 2 marks a day where reservation is disabled (holidays, fridays)
	DayState int    `json:"DayState"`
	Meals    []Meal `json:"Meals"`
}

const DayStateInactive = 2

func (d Day) Inactive() bool {
	return d.DayState == DayStateInactive
}

type Meal struct {
	MealName     string        `json:"MealName"`
	FoodMenu     []Food        `json:"FoodMenu"`
	LastReserved []Reservation `json:"LastReserved"`
}

type Food struct {
	FoodName string     `json:"FoodName"`
	SelfMenu []SelfMenu `json:"SelfMenu"`
}

// SelfMenu is a food as offered by one self-service restaurant.
type SelfMenu struct {
	SelfName string  `json:"SelfName"`
	Price    float64 `json:"Price"`
}

type Reservation struct {
	FoodName string  `json:"FoodName"`
	SelfName string  `json:"SelfName"`
	Price    float64 `json:"Price"`
}
