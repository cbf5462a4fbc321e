package stats

// NameCount is one (name, count) aggregation row. The backend serializes
// these as two-element arrays.
type NameCount struct {
	Name  string
	Count int
}

type Visitor struct {
	Visit      string `json:"visit"`
	IP         string `json:"ip"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"device_type"`
}

// Detailed is the aggregated visitor analytics report.
type Detailed struct {
	TotalVisitors    int         `json:"total_visitors"`
	TodayVisitors    int         `json:"today_visitors"`
	WeekVisitors     int         `json:"week_visitors"`
	MonthVisitors    int         `json:"month_visitors"`
	Browsers         []NameCount `json:"browsers"`
	OperatingSystems []NameCount `json:"operating_systems"`
	Countries        []NameCount `json:"countries"`
	Devices          []NameCount `json:"devices"`
	RecentVisitors   []Visitor   `json:"recent_visitors"`
}
