package models

const (
	BlogArrayTags        = "tags"
	BlogArraySeoKeywords = "seoKeywords"
)

type Blog struct {
	ID                string   `json:"_id,omitempty"`
	Title             string   `json:"title" validate:"required,min=1,max=120"`
	Slug              string   `json:"slug" validate:"required,slug"`
	Excerpt           string   `json:"excerpt" validate:"required,min=1,max=200"`
	Content           string   `json:"content" validate:"required"`
	ImageURLs         []string `json:"imageUrls" validate:"dive,url"`
	Treatment         string   `json:"treatment" validate:"required"`
	Tags              []string `json:"tags" validate:"max=10,dive,min=1,max=50"`
	IsPublished       bool     `json:"isPublished"`
	MetaTitle         string   `json:"metaTitle" validate:"max=120"`
	MetaDescription   string   `json:"metaDescription" validate:"max=160"`
	OpenGraphImageURL string   `json:"openGraphImageUrl"`
	SeoKeywords       []string `json:"seoKeywords" validate:"max=10,dive,min=1,max=50"`
}

func NewBlog() Blog {
	return Blog{
		ImageURLs:   []string{},
		Tags:        []string{},
		IsPublished: true,
		SeoKeywords: []string{},
	}
}

func (b *Blog) Normalize() {
	if b.ImageURLs == nil {
		b.ImageURLs = []string{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.SeoKeywords == nil {
		b.SeoKeywords = []string{}
	}
}

func (b Blog) Payload() Blog {
	payload := b
	payload.ID = ""
	payload.ImageURLs = cloneStrings(b.ImageURLs)
	payload.Tags = cloneStrings(b.Tags)
	payload.SeoKeywords = cloneStrings(b.SeoKeywords)
	return payload
}

func (b Blog) AssetURLs() []string {
	urls := cloneStrings(b.ImageURLs)
	if b.OpenGraphImageURL != "" {
		urls = append(urls, b.OpenGraphImageURL)
	}
	return urls
}
