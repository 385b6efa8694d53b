package docgen

// Contact is a named party printed into document contact blocks.
type Contact struct {
	Name    string
	Role    string
	Phone   string
	Email   string
	Web     string
	Address string
}

// Coordinator is the employer's Return to Work Coordinator.
var Coordinator = Contact{
	Name:    "Ben North",
	Role:    "Return to Work Coordinator",
	Phone:   "0403 427 790",
	Email:   "Ben.n@sga.com.au",
	Address: "8 Guest Street, Hawthorn 3122, VIC",
}

// Employer identity used across all documents.
const (
	EmployerName  = "Sanikleen Group Australia Pty Ltd"
	EmployerShort = "Sanikleen Group Australia"
)

// Agents maps a jurisdiction to its authorised insurer/agent.
var Agents = map[string]Contact{
	"VIC": {Name: "DXC Technology", Phone: "1300 365 885", Web: "www.dxc.com", Address: "GPO Box 4028, Melbourne VIC 3001"},
	"NSW": {Name: "Allianz", Phone: "13 10 13", Web: "www.allianz.com.au", Address: "GPO Box 4049, Sydney NSW 2001"},
	"QLD": {Name: "WorkCover Queensland", Phone: "1300 362 128", Web: "www.workcoverqld.com.au", Address: "GPO Box 2459, Brisbane QLD 4001"},
}

// AgentFor returns the agent for a state, defaulting to VIC when the
// state has no dedicated agent on file.
func AgentFor(state string) Contact {
	if a, ok := Agents[state]; ok {
		return a
	}
	return Agents["VIC"]
}
