package engine

// Event is a notable occurrence on the farm, dated by simulation day.
type Event struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"` // "weather", "feed", "herd", "market", "machinery", "shock"
}

// DailyRecord is one row of the run's time series, one per simulated day.
type DailyRecord struct {
	Day  int
	Date string

	Cash         float64
	Ewes         int
	Rams         int
	LambsMale    int
	LambsFemale  int
	PregnantEwes int

	HayBales     float64
	PendingBales float64
	FeedSource   string

	BCS           float64
	PerceivedBCS  float64
	PastureHealth float64
	Regime        float64
	SoilMoisture  float64
	Winter        bool
	Drought       bool
	MeatPrice     float64

	FeedCost      float64
	VetCost       float64
	ShearingCost  float64
	RamCost       float64
	MachineryCost float64
	MowingCost    float64
	AdminCost     float64
	OverheadCost  float64
	LaborCost     float64
	LaborHours    float64
	ShockCost     float64

	IncomeMeat    float64
	IncomeHay     float64
	IncomeSubsidy float64

	SoldAnimals int
	SoldHay     float64
}

// AgeSnapshot captures the herd's age structure on the first of each month.
type AgeSnapshot struct {
	Day         int
	Date        string
	EweAges     []float32
	Rams        int
	RamAge      float64
	LambsMale   int
	LambsFemale int
	LambAge     float64 // approximate, from the mid-March lambing peak
}

// Result is everything a finished run produced.
type Result struct {
	Records   []DailyRecord
	Events    []Event
	Snapshots []AgeSnapshot
}
