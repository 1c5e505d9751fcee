package ports

import "context"

// Locker — неблокирующая именованная взаимоисключающая блокировка.
//
// Владение определяется токеном, а не именем: Release снимает блокировку,
// только если она всё ещё принадлежит переданному токену.
type Locker interface {
	// TryAcquire — пытается взять блокировку и сразу возвращает результат.
	// При успехе возвращает токен владельца для Release.
	TryAcquire(ctx context.Context, name string) (token string, ok bool, err error)

	// Release — снимает блокировку с токеном из TryAcquire; истёкшую или
	// перехваченную другим владельцем не трогает.
	Release(ctx context.Context, name, token string) error
}
