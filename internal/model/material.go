package model

import "github.com/AndreyAkinshin/hypogen/internal/schema"

// Material is anything the test needs: a fixture, library, file, device and so on.
type Material struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Type          string         `json:"type"`
	Version       string         `json:"version,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Source        string         `json:"source,omitempty"`
}

// NewMaterial validates raw and builds a Material.
func NewMaterial(raw any) (Material, error) {
	obj, err := checkObject("Material", schema.DefMaterial, raw)
	if err != nil {
		return Material{}, err
	}
	return Material{
		Name:          stringField(obj, "name"),
		Description:   stringField(obj, "description"),
		Type:          stringField(obj, "type"),
		Version:       stringField(obj, "version"),
		Configuration: objectField(obj, "configuration"),
		Source:        stringField(obj, "source"),
	}, nil
}
