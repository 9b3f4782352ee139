package scheduling

// Appointment is a candidate slot as returned by the CRM.
type Appointment struct {
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Resources   []map[string]any `json:"resources"`
	TerritoryID string           `json:"territoryId"`
}

type CandidatesResponse struct {
	Candidates []Appointment `json:"candidates"`
}

// CandidatesRequest is the scheduling-policy body sent to the
// getAppointmentCandidates endpoint.
type CandidatesRequest struct {
	StartTime          string      `json:"startTime"`
	EndTime            string      `json:"endTime"`
	TerritoryIDs       []string    `json:"territoryIds"`
	SchedulingPolicyID string      `json:"schedulingPolicyId"`
	WorkType           WorkTypeRef `json:"workType"`
}

type WorkTypeRef struct {
	ID string `json:"id"`
}
