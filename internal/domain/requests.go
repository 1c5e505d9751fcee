package domain

// CreateCategoryRequest — данные для создания категории.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryRequest — частичное обновление категории; nil-поля не меняются.
type UpdateCategoryRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ApplyTo — переносит заданные поля запроса на категорию.
func (r *UpdateCategoryRequest) ApplyTo(c *Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
}

// CreateJobRequest — данные для создания работы.
type CreateJobRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	Keys        []string `json:"keys"`
}

// UpdateJobRequest — частичное обновление работы.
type UpdateJobRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Keys        *[]string `json:"keys,omitempty"`
}

// ApplyTo — переносит заданные поля запроса на работу.
func (r *UpdateJobRequest) ApplyTo(j *Job) {
	if r.Name != nil {
		j.Name = *r.Name
	}
	if r.Description != nil {
		j.Description = *r.Description
	}
	if r.Keys != nil {
		j.Keys = append([]string(nil), (*r.Keys)...)
	}
}

// CreateAdvertRequest — данные для создания объявления.
type CreateAdvertRequest struct {
	UserID       string     `json:"user_id"`
	JobID        string     `json:"job_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	DeliveryTime int        `json:"delivery_time"`
	Price        int        `json:"price"`
	Advertiser   Advertiser `json:"advertiser"`
}

// UpdateAdvertRequest — частичное обновление объявления.
type UpdateAdvertRequest struct {
	ID           string        `json:"id"`
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	DeliveryTime *int          `json:"delivery_time,omitempty"`
	Price        *int          `json:"price,omitempty"`
	Status       *AdvertStatus `json:"status,omitempty"`
}

// ApplyTo — переносит заданные поля запроса на объявление.
func (r *UpdateAdvertRequest) ApplyTo(a *Advert) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	if r.DeliveryTime != nil {
		a.DeliveryTime = *r.DeliveryTime
	}
	if r.Price != nil {
		a.Price = *r.Price
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
}

// MakeOfferRequest — предложение цены по объявлению.
type MakeOfferRequest struct {
	UserID       string `json:"user_id"`
	AdvertID     string `json:"advert_id"`
	OfferedPrice int    `json:"offered_price"`
}

// UpdateOfferRequest — частичное обновление предложения.
type UpdateOfferRequest struct {
	ID           string       `json:"id"`
	OfferedPrice *int         `json:"offered_price,omitempty"`
	Status       *OfferStatus `json:"status,omitempty"`
}

// ApplyTo — переносит заданные поля запроса на предложение.
func (r *UpdateOfferRequest) ApplyTo(o *Offer) {
	if r.OfferedPrice != nil {
		o.OfferedPrice = *r.OfferedPrice
	}
	if r.Status != nil {
		o.Status = *r.Status
	}
}
