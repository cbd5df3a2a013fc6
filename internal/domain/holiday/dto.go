package holiday

import "time"

type CreateHolidayRequest struct {
	Name        string      `json:"name"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Type        HolidayType `json:"type"`
	Description string      `json:"description"`
}

type HolidayResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Date        time.Time   `json:"date"`
	Type        HolidayType `json:"type"`
	Description string      `json:"description,omitempty"`
}

// HolidayListResponse carries one year's calendar plus the number of
// holidays still ahead of today, for the mobile home screen badge.
type HolidayListResponse struct {
	Holidays      []HolidayResponse `json:"holidays"`
	UpcomingCount int               `json:"upcoming_count"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date,
		Type:        h.Type,
		Description: h.Description,
	}
}
