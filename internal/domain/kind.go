package domain

// Kind — тип сущности; он же пространство имён ключей кэша.
type Kind string

const (
	KindCategory Kind = "category"
	KindJob      Kind = "job"
	KindAdvert   Kind = "advert"
	KindOffer    Kind = "offer"
	KindUser     Kind = "user"

	// KindSession — токены сессий (токен → имя пользователя).
	KindSession Kind = "session"
)

// CacheKey — ключ кэша вида "namespace:id".
func (k Kind) CacheKey(id string) string { return string(k) + ":" + id }

// UpdateLockName — имя распределённой блокировки на обновление сущности.
func (k Kind) UpdateLockName(id string) string { return "update:" + k.CacheKey(id) }
