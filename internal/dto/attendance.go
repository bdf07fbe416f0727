package dto

// Mark statuses distinguish a fresh scan from an already-marked day so the
// scanning client can render them differently.
const (
	MarkStatusSuccess   = "success"
	MarkStatusDuplicate = "duplicate"
)

// MarkResponse is the JSON body returned by POST /attendance/mark.
type MarkResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Student string `json:"student,omitempty"`
	RegNo   string `json:"reg_no,omitempty"`
	Time    string `json:"time,omitempty"`
}
