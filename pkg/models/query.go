package models

// Query is the saved query behind a dashboard tile
type Query struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug,omitempty"`
	Model         string   `json:"model"`
	View          string   `json:"view"`
	Fields        []string `json:"fields"`
	Pivots        []string `json:"pivots,omitempty"`
	DynamicFields string   `json:"dynamic_fields,omitempty"`
}

// ExploreField is one dimension or measure of a model explore
type ExploreField struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	LabelShort string `json:"label_short,omitempty"`
	ViewLabel  string `json:"view_label,omitempty"`
	Category   string `json:"category"`
	Type       string `json:"type,omitempty"`
	IsNumeric  bool   `json:"is_numeric"`
}

// ExploreFields lists the fields of an explore by kind
type ExploreFields struct {
	Dimensions []ExploreField `json:"dimensions"`
	Measures   []ExploreField `json:"measures"`
}

// ModelExplore is the model metadata of one explore
type ModelExplore struct {
	Name      string        `json:"name"`
	ModelName string        `json:"model_name,omitempty"`
	Fields    ExploreFields `json:"fields"`
}
