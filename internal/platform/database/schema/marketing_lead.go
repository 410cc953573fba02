package schema

// MarketingLeadTable represents the 'marketing.lead' table
type MarketingLeadTable struct {
	Table      string
	ID         string
	Name       string
	Email      string
	Phone      string
	Dealership string
	Address    string
	Message    string
	Status     string
	RelayError string
	SourceIP   string
	CreatedAt  string
	UpdatedAt  string
}

// MarketingLead is the schema definition for marketing.lead
var MarketingLead = MarketingLeadTable{
	Table:      "marketing.lead",
	ID:         "id",
	Name:       "name",
	Email:      "email",
	Phone:      "phone",
	Dealership: "dealership",
	Address:    "address",
	Message:    "message",
	Status:     "status",
	RelayError: "relayerror",
	SourceIP:   "sourceip",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t MarketingLeadTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Phone, t.Dealership, t.Address,
		t.Message, t.Status, t.RelayError, t.SourceIP, t.CreatedAt, t.UpdatedAt,
	}
}
