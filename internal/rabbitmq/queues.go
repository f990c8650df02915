package rabbitmq

// Exchange имя exchange для сообщений новостной рассылки.
const Exchange = "newsletter"

// WelcomeQueue очередь приветственных писем для новых подписчиков.
const WelcomeQueue = "newsletter.welcome"

// WelcomeRoutingKey ключ маршрутизации приветственных писем.
const WelcomeRoutingKey = "welcome"

// QueueConfig описывает очередь и ее ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNewsletterQueues возвращает очереди, которые объявляет sender-воркер.
func GetNewsletterQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: WelcomeQueue, RoutingKey: WelcomeRoutingKey},
	}
}
