package domain

type AuditLog struct {
	ID        string         `json:"_id"`
	UserID    string         `json:"userId"`
	ActorID   string         `json:"actorId,omitempty"`
	Action    string         `json:"action"`
	Meta      map[string]any `json:"meta,omitempty"`
	IP        string         `json:"ip,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

type PartnerEarnings struct {
	PartnerID      string  `json:"partnerId"`
	PartnerName    string  `json:"partnerName"`
	PartnerEmail   string  `json:"partnerEmail"`
	PartnerPhone   string  `json:"partnerPhone"`
	TotalCourses   int     `json:"totalCourses"`
	TotalViews     int     `json:"totalViews"`
	TotalPaidViews int     `json:"totalPaidViews"`
	TotalEarnings  float64 `json:"totalEarnings"`
}

type MonthlyStat struct {
	Month   string  `json:"month"`
	Users   int     `json:"users"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats falls back to zeros when the API sends nothing.
type DashboardStats struct {
	TotalUsers    int           `json:"totalUsers"`
	TotalPartners int           `json:"totalPartners"`
	TotalBookings int           `json:"totalBookings"`
	TotalRevenue  float64       `json:"totalRevenue"`
	Monthly       []MonthlyStat `json:"monthly"`
}

// WithDefaults replaces a nil monthly series with an empty one.
func (s DashboardStats) WithDefaults() DashboardStats {
	if s.Monthly == nil {
		s.Monthly = []MonthlyStat{}
	}
	return s
}
