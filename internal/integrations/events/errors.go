package events

import "errors"

var (
	// ErrEncode возвращается, когда событие не удалось сериализовать
	ErrEncode = errors.New("events: encode failed")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("events: publish failed")
)
