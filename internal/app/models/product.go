package models

const (
	ProductArrayVariants    = "variants"
	ProductArrayKeyPoints   = "keyPoints"
	ProductArraySeoKeywords = "seoKeywords"
)

type Product struct {
	ID                string    `json:"_id,omitempty"`
	Name              string    `json:"name" validate:"required,min=1,max=100"`
	Slug              string    `json:"slug" validate:"required,min=1,max=100,slug"`
	Description       string    `json:"description"`
	BasePrice         float64   `json:"basePrice" validate:"gte=0.01"`
	Variants          []Variant `json:"variants" validate:"dive"`
	ImageURLs         []string  `json:"imageUrls" validate:"dive,url"`
	Treatment         string    `json:"treatment" validate:"required"`
	NeedConsultation  bool      `json:"needConsultation"`
	KeyPoints         []string  `json:"keyPoints" validate:"max=10,dive,min=1,max=200"`
	IsActive          bool      `json:"isActive"`
	MetaTitle         string    `json:"metaTitle" validate:"max=120"`
	MetaDescription   string    `json:"metaDescription" validate:"max=160"`
	OpenGraphImageURL string    `json:"openGraphImageUrl"`
	SeoKeywords       []string  `json:"seoKeywords" validate:"max=10,dive,min=1,max=50"`
}

type Variant struct {
	Key   string  `json:"_key,omitempty"`
	Type  string  `json:"type" validate:"variant_type"`
	Value string  `json:"value" validate:"required"`
	Unit  string  `json:"unit" validate:"required"`
	Price float64 `json:"price" validate:"gte=0.01"`
	Stock int     `json:"stock" validate:"gte=0"`
}

func (v *Variant) SetKey(key string) { v.Key = key }

func NewProduct() Product {
	return Product{
		Variants:    []Variant{},
		ImageURLs:   []string{},
		KeyPoints:   []string{},
		IsActive:    true,
		SeoKeywords: []string{},
	}
}

func (p *Product) Normalize() {
	if p.Variants == nil {
		p.Variants = []Variant{}
	}
	for i := range p.Variants {
		if p.Variants[i].Key == "" {
			p.Variants[i].SetKey(newKey())
		}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if p.KeyPoints == nil {
		p.KeyPoints = []string{}
	}
	if p.SeoKeywords == nil {
		p.SeoKeywords = []string{}
	}
}

func (p Product) Payload() Product {
	payload := p
	payload.ID = ""
	payload.Variants = make([]Variant, len(p.Variants))
	for i, variant := range p.Variants {
		variant.Key = ""
		payload.Variants[i] = variant
	}
	payload.ImageURLs = cloneStrings(p.ImageURLs)
	payload.KeyPoints = cloneStrings(p.KeyPoints)
	payload.SeoKeywords = cloneStrings(p.SeoKeywords)
	return payload
}

// AssetURLs lists every asset the product points at, open graph image included.
func (p Product) AssetURLs() []string {
	urls := cloneStrings(p.ImageURLs)
	if p.OpenGraphImageURL != "" {
		urls = append(urls, p.OpenGraphImageURL)
	}
	return urls
}
