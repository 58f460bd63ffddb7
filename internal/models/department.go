package models

// Spot is one unique fishing station inside a department listing.
type Spot struct {
	Code        string      `json:"code"` // code_station
	Name        string      `json:"name"`
	Commune     string      `json:"commune"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	// OperationCode links the spot to its most recent sampling operation,
	// used as the key for the detail screen.
	OperationCode string `json:"operation_code"`
}

// SpeciesRef is a species reference entry (common + scientific name)
// aggregated across a department.
type SpeciesRef struct {
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
}

// DepartmentData is the consolidated feed for one department.
type DepartmentData struct {
	Code    string       `json:"code"`
	Name    string       `json:"name"`
	Spots   []Spot       `json:"spots"`
	Species []SpeciesRef `json:"species"`
}
