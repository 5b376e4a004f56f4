package operation

import (
	"SchoolQL/internal/lib/api/response"
	"net/http"

	"github.com/go-chi/render"
)

type Description struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Arguments []string `json:"arguments"`
	Required  []string `json:"required,omitempty"`
}

var descriptions = []Description{
	{Name: ListAll, Kind: "read", Arguments: []string{"name", "sortBy", "offset", "limit"}},
	{Name: GetByID, Kind: "read", Arguments: []string{"id"}, Required: []string{"id"}},
	{Name: GetByName, Kind: "read", Arguments: []string{"name"}, Required: []string{"name"}},
	{Name: Create, Kind: "write", Arguments: []string{"school_name", "school_population", "address", "status"}, Required: []string{"school_name"}},
	{Name: Update, Kind: "write", Arguments: []string{"id", "school_name", "school_population", "address", "status"}, Required: []string{"id"}},
	{Name: Deactivate, Kind: "write", Arguments: []string{"id"}, Required: []string{"id"}},
	{Name: Delete, Kind: "write", Arguments: []string{"id"}, Required: []string{"id"}},
}

// Operations lists what the dispatcher accepts.
func Operations(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.Ok(descriptions))
}
