package domain

import "time"

// Base — общие поля всех сущностей маркетплейса.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"creation_timestamp"`
	UpdatedAt time.Time `json:"update_timestamp"`
}

// Category — категория работ.
type Category struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageID     string `json:"image_id,omitempty"`
}

// Job — вид работы внутри категории с набором ключевых слов для поиска.
type Job struct {
	Base
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageID     string    `json:"image_id,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Keys        []string  `json:"keys"`
}

// CategoryID — id категории работы (пустая строка, если категория не загружена).
func (j *Job) CategoryID() string {
	if j == nil || j.Category == nil {
		return ""
	}
	return j.Category.ID
}

// Advert — объявление пользователя по конкретной работе.
type Advert struct {
	Base
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	DeliveryTime int          `json:"delivery_time"`
	Price        int          `json:"price"`
	ImageID      string       `json:"image_id,omitempty"`
	Status       AdvertStatus `json:"status"`
	Advertiser   Advertiser   `json:"advertiser"`
	Job          *Job         `json:"job,omitempty"`
}

// JobID — id работы объявления.
func (a *Advert) JobID() string {
	if a == nil || a.Job == nil {
		return ""
	}
	return a.Job.ID
}

// Offer — предложение исполнителя по объявлению.
type Offer struct {
	Base
	UserID       string      `json:"user_id"`
	OfferedPrice int         `json:"offered_price"`
	Status       OfferStatus `json:"status"`
	Advert       *Advert     `json:"advert,omitempty"`
}

// AdvertID — id объявления, к которому относится предложение.
func (o *Offer) AdvertID() string {
	if o == nil || o.Advert == nil {
		return ""
	}
	return o.Advert.ID
}

// Notification — уведомление пользователю.
type Notification struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"creation_timestamp"`
	Message   string    `json:"message"`
	OfferID   string    `json:"offer_id"`
	UserID    string    `json:"user_id"`
}

// User — пользователь из внешнего каталога пользователей.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Asset — бинарный файл (изображение), прикреплённый к сущности.
type Asset struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}
