package response

type MaintenanceResponse struct {
	Job  string `json:"job"`
	Rows int64  `json:"rows"`
}
