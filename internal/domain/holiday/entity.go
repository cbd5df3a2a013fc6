package holiday

import "time"

type HolidayType string

const (
	TypeNational   HolidayType = "national"
	TypeRestricted HolidayType = "restricted"
	TypeCompany    HolidayType = "company"
)

type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Type        HolidayType
	Description string
	CreatedAt   time.Time
}
