package dto

// ReportCreatedMessage is the payload published on the report topic when an
// assessment session ends. The consumer emails the assigned psychologist.
type ReportCreatedMessage struct {
	ReportId uint `json:"report_id"`
}
