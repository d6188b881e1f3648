package responses

import "github.com/goccy/go-json"

// GatewayEnvelope is the body shape every remote API endpoint answers with.
type GatewayEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *ListMeta       `json:"meta,omitempty"`
}

type ListResult struct {
	Data json.RawMessage `json:"data"`
	Meta *ListMeta       `json:"meta,omitempty"`
}

type UploadAsset struct {
	URL string `json:"url"`
}

type DeleteAssets struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
}

type TreatmentOption struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
