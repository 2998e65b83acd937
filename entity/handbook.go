package entity

// Client is one row of the clients handbook sheet. Completed clients are
// hidden from the client choice step.
type Client struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// WorkType is one row of the work types handbook sheet.
type WorkType struct {
	Name string `json:"name"`
}
